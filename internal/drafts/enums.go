package drafts

import (
	"fmt"
	"strings"
)

type Folder int

const (
	FolderInbox Folder = iota
	FolderArchive
	FolderTrash
)

var folderNames = [...]string{"inbox", "archive", "trash"}

func (f Folder) String() string {
	if f < 0 || int(f) >= len(folderNames) {
		return fmt.Sprintf("Folder(%d)", int(f))
	}
	return folderNames[f]
}

type Filter int

const (
	FilterInbox Filter = iota
	FilterFlagged
	FilterArchive
	FilterTrash
	FilterAll
)

var filterNames = [...]string{"inbox", "flagged", "archive", "trash", "all"}

func (f Filter) String() string {
	if f < 0 || int(f) >= len(filterNames) {
		return fmt.Sprintf("Filter(%d)", int(f))
	}
	return filterNames[f]
}

// Match reports whether d belongs to the filter. "all" covers inbox and
// archive; trashed drafts only appear under "trash".
func (f Filter) Match(d Draft) bool {
	switch f {
	case FilterInbox:
		return !d.IsArchived && !d.IsTrashed
	case FilterFlagged:
		return d.IsFlagged && !d.IsTrashed
	case FilterArchive:
		return d.IsArchived && !d.IsTrashed
	case FilterTrash:
		return d.IsTrashed
	case FilterAll:
		return !d.IsTrashed
	}
	return false
}

func ParseFilter(s string) (Filter, error) {
	for i, name := range filterNames {
		if strings.EqualFold(s, name) {
			return Filter(i), nil
		}
	}
	return FilterInbox, fmt.Errorf("unknown filter %q (use %s)", s, strings.Join(filterNames[:], "|"))
}

type Sort int

const (
	SortCreated Sort = iota
	SortModified
	SortAccessed
)

var sortNames = [...]string{"created", "modified", "accessed"}

func (s Sort) String() string {
	if s < 0 || int(s) >= len(sortNames) {
		return fmt.Sprintf("Sort(%d)", int(s))
	}
	return sortNames[s]
}

func ParseSort(s string) (Sort, error) {
	for i, name := range sortNames {
		if strings.EqualFold(s, name) {
			return Sort(i), nil
		}
	}
	return SortCreated, fmt.Errorf("unknown sort %q (use %s)", s, strings.Join(sortNames[:], "|"))
}
