package harbor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Project is a Harbor project.
type Project struct {
	ProjectID int64  `json:"project_id"`
	Name      string `json:"name"`
}

// Repository is a Harbor repository. Name usually carries the project prefix ("library/nginx").
type Repository struct {
	ID            int64     `json:"id"`
	ProjectID     int64     `json:"project_id"`
	Name          string    `json:"name"`
	ArtifactCount int64     `json:"artifact_count"`
	UpdateTime    Timestamp `json:"update_time"`
}

// Artifact is an immutable manifest or index stored in a repository.
type Artifact struct {
	Digest    string    `json:"digest"`
	MediaType string    `json:"media_type"`
	PushTime  Timestamp `json:"push_time"`
	Tags      []Tag     `json:"tags"`
}

// Tag binds a name to an artifact.
type Tag struct {
	Name     string    `json:"name"`
	PushTime Timestamp `json:"push_time"`
}

// TagNames returns the names of the artifact's tags in registry order.
func (a Artifact) TagNames() []string {
	names := make([]string, 0, len(a.Tags))

	for _, tag := range a.Tags {
		if tag.Name != "" {
			names = append(names, tag.Name)
		}
	}

	return names
}

// Timestamp decodes the ISO-8601 strings Harbor returns as well as epoch seconds.
// A null or empty value decodes to the zero time, and so does a value in any other format;
// Invalid then returns the raw value so one bad entry does not fail its whole page.
type Timestamp struct {
	time.Time

	invalid string
}

// ParseTimestamp parses an ISO-8601 or epoch-seconds timestamp.
func ParseTimestamp(raw string) (Timestamp, error) {
	var t Timestamp

	err := t.parseString(raw)

	return t, err
}

// Invalid returns the raw value that could not be decoded, or "".
func (t Timestamp) Invalid() string {
	return t.invalid
}

// timestampLayouts are tried in order for string timestamps.
var timestampLayouts = []string{ //nolint:gochecknoglobals // Read-only parse table.
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}

		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		err := json.Unmarshal(data, &raw)
		if err != nil {
			return fmt.Errorf("decode timestamp: %w", err)
		}
	}

	if t.parseString(raw) != nil {
		t.Time = time.Time{}
		t.invalid = raw
	}

	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}

	return json.Marshal(t.UTC().Format(time.RFC3339Nano)) //nolint:wrapcheck // Plain string encoding.
}

func (t *Timestamp) parseString(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		t.Time = time.Time{}

		return nil
	}

	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			t.Time = parsed

			return nil
		}
	}

	return t.parseEpoch(raw)
}

func (t *Timestamp) parseEpoch(raw string) error {
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimestamp, raw)
	}

	whole := int64(seconds)
	t.Time = time.Unix(whole, int64((seconds-float64(whole))*float64(time.Second))).UTC()

	return nil
}
