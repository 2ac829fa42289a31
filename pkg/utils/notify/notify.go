package notify

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/devantler-tech/harborsync/pkg/utils/timer"
	fcolor "github.com/fatih/color"
)

// MessageType selects the symbol and colour of a message.
type MessageType int

const (
	// ErrorType is a red line starting with ✗.
	ErrorType MessageType = iota
	// WarningType is a yellow line starting with ⚠.
	WarningType
	// ActivityType is a plain line starting with ►, used while work is in progress.
	ActivityType
	// GenerateType is a plain line starting with ✚, used when a file is written.
	GenerateType
	// SuccessType is a green line starting with ✔.
	SuccessType
	// InfoType is a blue line starting with ℹ.
	InfoType
	// TitleType is a bold line starting with an emoji.
	TitleType
)

// DefaultTitleEmoji is used for titles written without an emoji.
const DefaultTitleEmoji = "ℹ️"

// Message is one line (or block) of user output.
type Message struct {
	Type    MessageType
	Content string
	Args    []any
	// Timer, when set on a success message, appends the stage and total durations.
	Timer timer.Timer
	// Emoji replaces DefaultTitleEmoji on titles.
	Emoji string
	// Writer defaults to os.Stdout.
	Writer io.Writer
}

type style struct {
	symbol string
	color  *fcolor.Color
}

var styles = map[MessageType]style{
	ErrorType:    {symbol: "✗ ", color: fcolor.New(fcolor.FgRed)},
	WarningType:  {symbol: "⚠ ", color: fcolor.New(fcolor.FgYellow)},
	ActivityType: {symbol: "► ", color: fcolor.New(fcolor.Reset)},
	GenerateType: {symbol: "✚ ", color: fcolor.New(fcolor.Reset)},
	SuccessType:  {symbol: "✔ ", color: fcolor.New(fcolor.FgGreen)},
	InfoType:     {symbol: "ℹ ", color: fcolor.New(fcolor.FgBlue)},
	TitleType:    {color: fcolor.New(fcolor.Reset, fcolor.Bold)},
}

// Errorf writes an error line.
func Errorf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: ErrorType, Content: format, Args: args, Writer: writer})
}

// Warningf writes a warning line.
func Warningf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: WarningType, Content: format, Args: args, Writer: writer})
}

// Activityf writes an in-progress line. Activity lines are lower case by convention.
func Activityf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: ActivityType, Content: format, Args: args, Writer: writer})
}

// Generatef writes a line announcing a generated file.
func Generatef(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: GenerateType, Content: format, Args: args, Writer: writer})
}

// Successf writes a success line.
func Successf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: SuccessType, Content: format, Args: args, Writer: writer})
}

// SuccessWithTimerf writes a success line followed by the timing block of tmr.
func SuccessWithTimerf(writer io.Writer, tmr timer.Timer, format string, args ...any) {
	WriteMessage(Message{Type: SuccessType, Content: format, Args: args, Timer: tmr, Writer: writer})
}

// Infof writes an informational line.
func Infof(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: InfoType, Content: format, Args: args, Writer: writer})
}

// Titlef writes a stage title.
func Titlef(writer io.Writer, emoji, format string, args ...any) {
	WriteMessage(Message{Type: TitleType, Content: format, Args: args, Emoji: emoji, Writer: writer})
}

// WriteMessage renders msg. Continuation lines of multi-line content are indented under the
// first line's text. Write failures go to stderr instead of being returned.
func WriteMessage(msg Message) {
	writer := msg.Writer
	if writer == nil {
		writer = os.Stdout
	}

	content := msg.Content
	if len(msg.Args) > 0 {
		content = fmt.Sprintf(msg.Content, msg.Args...)
	}

	st, ok := styles[msg.Type]
	if !ok {
		st = style{color: fcolor.New(fcolor.Reset)}
	}

	prefix := st.symbol

	if msg.Type == TitleType {
		prefix = msg.Emoji
		if prefix == "" {
			prefix = DefaultTitleEmoji
		}

		prefix += " "
	}

	_, err := st.color.Fprintf(writer, "%s%s\n", prefix, indent(content, st.symbol))
	report(err)

	if msg.Type != SuccessType || msg.Timer == nil {
		return
	}

	total, stage := msg.Timer.GetTiming()

	_, err = st.color.Fprintf(writer, "⏲ current: %s\n  total:  %s\n", stage, total)
	report(err)
}

func report(err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "notify: failed to print message: %v\n", err)
	}
}

func indent(content, symbol string) string {
	if symbol == "" || !strings.Contains(content, "\n") {
		return content
	}

	pad := strings.Repeat(" ", len([]rune(symbol)))
	lines := strings.Split(content, "\n")

	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = pad + lines[i]
		}
	}

	return strings.Join(lines, "\n")
}
