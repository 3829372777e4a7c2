package drafts

import (
	"fmt"
	"strings"
)

// jxaRecord converts a Drafts draft object into the JSON shape of Draft.
const jxaRecord = `function record(d) {
  var trashed = d.isTrashed(), archived = d.isArchived();
  return {
    uuid: d.id(),
    content: d.content(),
    title: d.title(),
    tags: d.tags(),
    isFlagged: d.flagged(),
    isArchived: archived,
    isTrashed: trashed,
    folder: trashed ? "trash" : (archived ? "archive" : "inbox"),
    createdAt: d.createdAt().toISOString(),
    modifiedAt: d.modifiedAt().toISOString(),
    permalink: d.permalink()
  };
}
`

const queryScript = jxaRecord + `function run(argv) {
  var ds = Application("Drafts").drafts();
  if (!ds) return "[]";
  return JSON.stringify(ds.map(record));
}`

const getScript = jxaRecord + `function run(argv) {
  var d = Application("Drafts").drafts.byId(argv[0]);
  try { d.id(); } catch (e) { return "null"; }
  return JSON.stringify(record(d));
}`

const activeScript = `tell application "Drafts"
	return id of current draft
end tell`

// escapeForAppleScript escapes a string for use in an AppleScript literal.
func escapeForAppleScript(s string) string {
	// Backslashes first, then quotes
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}

// tagsToAppleScript renders tags as an AppleScript list.
func tagsToAppleScript(tags []string) string {
	if len(tags) == 0 {
		return "{}"
	}
	escaped := make([]string, len(tags))
	for i, t := range tags {
		escaped[i] = `"` + escapeForAppleScript(t) + `"`
	}
	return "{" + strings.Join(escaped, ", ") + "}"
}

func createScript(text string, opt CreateOptions) string {
	return fmt.Sprintf(`tell application "Drafts"
	set d to make new draft with properties {content:"%s", flagged:%t, tags:%s}
	set isArchived of d to %t
	return id of d
end tell`, escapeForAppleScript(text), opt.Flagged, tagsToAppleScript(opt.Tags), opt.Folder == FolderArchive)
}

// onDraft wraps body in a tell block with d bound to the draft uuid.
func onDraft(uuid, body string) string {
	return fmt.Sprintf(`tell application "Drafts"
	set d to draft id "%s"
%s
end tell`, escapeForAppleScript(uuid), body)
}

func prependScript(uuid, text string) string {
	return onDraft(uuid, fmt.Sprintf(`	set content of d to "%s" & linefeed & (content of d)`, escapeForAppleScript(text)))
}

func appendScript(uuid, text string) string {
	return onDraft(uuid, fmt.Sprintf(`	set content of d to (content of d) & linefeed & "%s"`, escapeForAppleScript(text)))
}

func replaceScript(uuid, text string) string {
	return onDraft(uuid, fmt.Sprintf(`	set content of d to "%s"`, escapeForAppleScript(text)))
}

func trashScript(uuid string) string {
	return onDraft(uuid, `	set isTrashed of d to true`)
}

func archiveScript(uuid string) string {
	return onDraft(uuid, `	set isArchived of d to true`)
}

func tagScript(uuid string, tags []string) string {
	return onDraft(uuid, fmt.Sprintf(`	set existingTags to tags of d
	set newTags to %s
	repeat with t in newTags
		if t is not in existingTags then
			set end of existingTags to (t as string)
		end if
	end repeat
	set tags of d to existingTags`, tagsToAppleScript(tags)))
}

func selectScript(uuid string) string {
	return onDraft(uuid, `	open d`)
}

func actionScript(action, uuid string) string {
	return onDraft(uuid, fmt.Sprintf(`	set actionToRun to missing value
	repeat with a in (every action)
		if name of a is "%s" then
			set actionToRun to a
			exit repeat
		end if
	end repeat
	if actionToRun is missing value then error "action not found: %s"
	perform action actionToRun on draft d`, escapeForAppleScript(action), escapeForAppleScript(action)))
}
