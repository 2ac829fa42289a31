package registry

import (
	"net/url"
	"strings"
)

// RepositoryReference identifies a repository within a project.
//
// The zero value is not useful; construct it with NewRepositoryReference.
type RepositoryReference struct {
	project string
	name    string

	sourceProject string
	sourceName    string
}

// NewRepositoryReference normalises a repository name within a project.
//
// A leading "project/" prefix is removed once, so "library/nginx" and "nginx" in project
// "library" both yield the repository "nginx". Image reference components are lower-cased.
func NewRepositoryReference(project, repository string) RepositoryReference {
	project = strings.Trim(strings.TrimSpace(project), "/")
	repository = strings.Trim(strings.TrimSpace(repository), "/")

	if project != "" {
		repository = strings.TrimPrefix(repository, project+"/")
	}

	return RepositoryReference{
		project:       strings.ToLower(project),
		name:          strings.ToLower(repository),
		sourceProject: project,
		sourceName:    repository,
	}
}

// Project returns the normalised project name.
func (r RepositoryReference) Project() string {
	return r.project
}

// Name returns the normalised repository name without the project prefix.
func (r RepositoryReference) Name() string {
	return r.name
}

// SourceProject returns the project name as it was read from the registry.
func (r RepositoryReference) SourceProject() string {
	return r.sourceProject
}

// SourceName returns the repository name as it was read from the registry, without the
// project prefix and with its original case.
func (r RepositoryReference) SourceName() string {
	return r.sourceName
}

// Path returns "project/repository".
func (r RepositoryReference) Path() string {
	if r.project == "" {
		return r.name
	}

	return r.project + "/" + r.name
}

// String implements fmt.Stringer.
func (r RepositoryReference) String() string {
	return r.Path()
}

// Image returns the image reference "host/project/repository:tag".
func (r RepositoryReference) Image(host, tag string) string {
	return strings.TrimSuffix(host, "/") + "/" + r.Path() + ":" + tag
}

// EncodedSourceName returns SourceName with every path segment percent-encoded.
func (r RepositoryReference) EncodedSourceName() string {
	return EncodeRepositoryPath(r.sourceName)
}

// EncodedName returns Name with every path segment percent-encoded.
func (r RepositoryReference) EncodedName() string {
	return EncodeRepositoryPath(r.name)
}

// EncodeRepositoryPath percent-encodes each slash-delimited segment of a repository name
// independently and rejoins them with "/", so nested repository names keep their separators.
func EncodeRepositoryPath(repository string) string {
	segments := strings.Split(repository, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}

	return strings.Join(segments, "/")
}

// SplitQualifiedName splits "project/repository" at the first slash.
// ok is false when the name carries no project component.
func SplitQualifiedName(qualified string) (string, string, bool) {
	qualified = strings.Trim(strings.TrimSpace(qualified), "/")

	project, repository, found := strings.Cut(qualified, "/")
	if !found || project == "" || repository == "" {
		return "", qualified, false
	}

	return project, repository, true
}
