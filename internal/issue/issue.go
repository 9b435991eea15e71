// SPDX-License-Identifier: MPL-2.0

package issue

import "github.com/charmbracelet/glamour"

// Id identifies a catalogue page.
type Id int

const (
	PathTraversalId Id = iota + 1
	DestinationConflictId
	ArchiveNotFoundId
	InvalidArchiveId
	UnsupportedEntryId
	DuplicateEntryId
	PermissionDeniedId
	ConfigLoadFailedId
	CommandFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

// Render turns the page into terminal output using the glamour style at
// stylePath ("dark", "light", "notty" or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.extLinks) > 0 {
		md += "\n\n## See also\n"
		for _, link := range i.extLinks {
			md += "\n- <" + string(link) + ">"
		}
	}
	return render(md, stylePath)
}

var (
	render = glamour.Render

	pathTraversalIssue = &Issue{
		id: PathTraversalId,
		mdMsg: `
# Unsafe archive rejected!

The archive contains an entry whose name points outside the extraction
directory (a "zip-slip" entry), or whose path crosses a symbolic link that
already exists there. Extraction stopped at that entry; entries
stored before it may already have been written.

## Things you can try:
- Inspect the entry names before extracting:
~~~
$ zipper list suspicious.zip
~~~

- Ask the producer of the archive to rebuild it with relative entry names
- Do not extract the archive with tools that skip this check`,
		extLinks: []HttpLink{"https://security.snyk.io/research/zip-slip-vulnerability"},
	}

	destinationConflictIssue = &Issue{
		id: DestinationConflictId,
		mdMsg: `
# Destination already exists!

Packing never overwrites or appends to an existing path.

## Things you can try:
- Pick a new archive name:
~~~
$ zipper pack out/release-2.zip src/
~~~

- Remove the old archive first if it is no longer needed`,
	}

	archiveNotFoundIssue = &Issue{
		id: ArchiveNotFoundId,
		mdMsg: `
# Archive not found!

The archive path does not exist or is not readable.

## Things you can try:
- Check the path for typos
- Read the archive from standard input instead:
~~~
$ curl -sL https://example.com/release.zip | zipper unpack - --dest out/
~~~`,
	}

	invalidArchiveIssue = &Issue{
		id: InvalidArchiveId,
		mdMsg: `
# Not a ZIP archive!

The input could not be parsed as a ZIP container. It may be truncated,
corrupted, or in another format (tar, gzip, 7z).

## Things you can try:
- Check the file type:
~~~
$ file release.zip
~~~

- Download or copy the archive again`,
	}

	unsupportedEntryIssue = &Issue{
		id: UnsupportedEntryId,
		mdMsg: `
# Unsupported archive entry!

The archive stores a symbolic link or another special file. Only regular
files and directories are extracted.

## Things you can try:
- List the archive to find the entry:
~~~
$ zipper list release.zip
~~~

- Rebuild the archive without links`,
	}

	duplicateEntryIssue = &Issue{
		id: DuplicateEntryId,
		mdMsg: `
# Duplicate entry name!

Two sources map to the same name inside the archive. Files passed directly
are stored under their base name, so ` + "`a/notes.txt`" + ` and ` + "`b/notes.txt`" + `
collide.

## Things you can try:
- Pass the parent directories instead of the files
- Rename one of the files`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

A file or directory could not be read or written.

## Things you can try:
- Check the permissions of the sources and of the destination directory
- Extract into a directory you own`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the zipper configuration file.

## Configuration file locations:
- Linux: ~/.config/zipper/config.cue
- macOS: ~/Library/Application Support/zipper/config.cue
- Windows: %APPDATA%\zipper\config.cue

A ` + "`config.toml`" + ` in the same directory is read when no CUE file exists.

## Example configuration:
~~~cue
ui: {
  verbose: false
  color_scheme: "auto"
}
unpack: default_dest: "./out"
command: {
  timeout: "10s"
  sandbox_spawn: true
}
~~~

## Things you can try:
- Print the effective configuration:
~~~
$ zipper config show
~~~

- Remove the config file to fall back to defaults`,
	}

	commandFailedIssue = &Issue{
		id: CommandFailedId,
		mdMsg: `
# Command failed!

The launched process exited with a non-zero status or ran past its timeout.

## Things you can try:
- Re-run with verbose output to see the captured output:
~~~
$ zipper --verbose exec -- <command>
~~~

- Raise ` + "`command.timeout`" + ` in the configuration`,
	}

	issues = map[Id]*Issue{
		pathTraversalIssue.Id():       pathTraversalIssue,
		destinationConflictIssue.Id(): destinationConflictIssue,
		archiveNotFoundIssue.Id():     archiveNotFoundIssue,
		invalidArchiveIssue.Id():      invalidArchiveIssue,
		unsupportedEntryIssue.Id():    unsupportedEntryIssue,
		duplicateEntryIssue.Id():      duplicateEntryIssue,
		permissionDeniedIssue.Id():    permissionDeniedIssue,
		configLoadFailedIssue.Id():    configLoadFailedIssue,
		commandFailedIssue.Id():       commandFailedIssue,
	}
)

// Get returns the page for id, or nil when the catalogue has none.
func Get(id Id) *Issue {
	return issues[id]
}
