package drafts

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Separator divides the uuid from the content in a picker line.
const Separator = '|'

// linebreak stands in for runs of newlines so a draft fits on one line.
const linebreak = " ¶ "

var newlines = regexp.MustCompile(`\n+`)

// Draft is a note as reported by the Drafts app.
type Draft struct {
	UUID       string   `json:"uuid"`
	Content    string   `json:"content"`
	Title      string   `json:"title"`
	Tags       []string `json:"tags"`
	IsFlagged  bool     `json:"isFlagged"`
	IsArchived bool     `json:"isArchived"`
	IsTrashed  bool     `json:"isTrashed"`
	Folder     string   `json:"folder"`
	CreatedAt  string   `json:"createdAt"`
	ModifiedAt string   `json:"modifiedAt"`
	Permalink  string   `json:"permalink"`
}

// FirstLine returns the first non-empty line of the content.
func (d Draft) FirstLine() string {
	for _, l := range strings.Split(d.Content, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			return l
		}
	}
	return ""
}

// PickerLine renders d as "UUID | content" on a single line.
func PickerLine(d Draft) string {
	return fmt.Sprintf("%s %c %s", d.UUID, Separator, newlines.ReplaceAllString(d.Content, linebreak))
}

// PickedUUID returns the uuid a picker line starts with.
func PickedUUID(line string) (string, error) {
	line = strings.TrimSpace(line)
	uuid, _, ok := strings.Cut(line, " "+string(Separator))
	if !ok {
		uuid = line
	}
	if uuid = strings.TrimSpace(uuid); uuid == "" {
		return "", errors.New("no draft picked")
	}
	return uuid, nil
}

// HasTag reports whether the draft carries tag.
func (d Draft) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (d Draft) created() time.Time  { return parseTime(d.CreatedAt) }
func (d Draft) modified() time.Time { return parseTime(d.ModifiedAt) }

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// folderOf derives the folder name from the archive and trash flags.
func folderOf(d Draft) string {
	switch {
	case d.IsTrashed:
		return FolderTrash.String()
	case d.IsArchived:
		return FolderArchive.String()
	default:
		return FolderInbox.String()
	}
}

// DecodeRecords parses the JSON a read script prints. Empty output and
// "null" both mean no drafts.
func DecodeRecords(out []byte) ([]Draft, error) {
	s := strings.TrimSpace(string(out))
	if s == "" || s == "null" {
		return []Draft{}, nil
	}
	var ds []Draft
	if err := json.Unmarshal([]byte(s), &ds); err != nil {
		return nil, fmt.Errorf("decode drafts: %w", err)
	}
	if ds == nil {
		ds = []Draft{}
	}
	for i := range ds {
		normalize(&ds[i])
	}
	return ds, nil
}

// DecodeRecord parses a single draft. It returns nil for "null".
func DecodeRecord(out []byte) (*Draft, error) {
	s := strings.TrimSpace(string(out))
	if s == "" || s == "null" {
		return nil, nil
	}
	var d Draft
	if err := json.Unmarshal([]byte(s), &d); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	normalize(&d)
	return &d, nil
}

func normalize(d *Draft) {
	if d.Tags == nil {
		d.Tags = []string{}
	}
	if d.Folder == "" {
		d.Folder = folderOf(*d)
	}
}
