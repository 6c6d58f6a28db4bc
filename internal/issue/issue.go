// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	CommandNotDefinedId Id = iota + 1
	UribofileNotFoundId
	UribofileParseErrorId
	NameNotDefinedId
	LaunchFailedId
	ShellArgsUnsupportedId
	ConfigLoadFailedId
	PermissionDeniedId
)

type (
	Id int

	MarkdownMsg string

	HttpLink string

	Renderer interface {
		Render(in string, stylePath string) (string, error)
	}

	Issue struct {
		id       Id          // ID used to lookup the issue
		mdMsg    MarkdownMsg // Markdown text that will be rendered
		docLinks []HttpLink
		extLinks []HttpLink // external links that might be useful for the user
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue page with the named glamour style
// ("dark", "light", "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.docLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	commandNotDefinedIssue = &Issue{
		id: CommandNotDefinedId,
		mdMsg: `
# Command is not defined!

uribo looked for the name in every ` + "`.uribo`" + ` file from the current directory
up to the filesystem root, then in the default file, and found no definition.

## Things you can try:
- List the names visible from here:
~~~
$ uribo list
~~~

- Define the command in the current directory:
~~~
$ uribo put build go build ./...
~~~

- Point ` + "`URIBO_DEFAULT_FILE`" + ` at a shared file of commands you use everywhere.`,
	}

	uribofileNotFoundIssue = &Issue{
		id: UribofileNotFoundId,
		mdMsg: `
# No .uribo file in the current directory!

` + "`uribo delete`" + ` only edits the ` + "`.uribo`" + ` file of the current directory; it never
touches files in parent directories.

## Things you can try:
- Change to the directory that defines the command:
~~~
$ uribo find <name>
~~~
  prints the file that defines it.`,
	}

	uribofileParseErrorIssue = &Issue{
		id: UribofileParseErrorId,
		mdMsg: `
# Failed to parse a .uribo file!

A ` + "`.uribo`" + ` file on the way up from the current directory is not a valid command
map. Resolution stops at the first malformed file.

## Expected shape:
~~~json
{
  "build": {
    "command": "go",
    "args": ["build", "./..."],
    "working_dir": "src"
  },
  "legacy": "make all && make install"
}
~~~

## Things you can try:
- Fix the JSON syntax reported above (comments and trailing commas are allowed)
- Make sure every structured record has a non-empty "command"`,
	}

	nameNotDefinedIssue = &Issue{
		id: NameNotDefinedId,
		mdMsg: `
# Name is not defined in this directory!

The ` + "`.uribo`" + ` file of the current directory does not define that name.

## Things you can try:
- Check the spelling against the defined names:
~~~
$ uribo list
~~~`,
	}

	launchFailedIssue = &Issue{
		id: LaunchFailedId,
		mdMsg: `
# Failed to launch the command!

The command was found but its process could not be started.

## Common causes:
- The executable is not installed or not in your PATH
- The record's "working_dir" does not exist (relative paths are resolved
  against the directory of the defining ` + "`.uribo`" + ` file)
- The shell configured for shell-text records is missing

## Things you can try:
- Inspect the resolved record:
~~~
$ uribo find <name>
~~~

- Use the built-in shell for shell-text records:
~~~
$ URIBO_SHELL=virtual uribo run <name>
~~~`,
	}

	shellArgsUnsupportedIssue = &Issue{
		id: ShellArgsUnsupportedId,
		mdMsg: `
# Extra arguments for a shell-text command!

Shell-text records are run as a single ` + "`<shell> -c <text>`" + ` string and have no
argument list to append to.

## Things you can try:
- Redefine the command as a structured record:
~~~
$ uribo put <name> <program> <fixed-args...>
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

uribo could not read its configuration file.

## Configuration locations:
- Linux: ~/.config/uribo/config.cue
- macOS: ~/Library/Application Support/uribo/config.cue
- Windows: %APPDATA%\uribo\config.cue

## Things you can try:
- Check the CUE syntax in your config file
- Print the effective configuration:
~~~
$ uribo config show
~~~

- Reset to defaults by removing the file and running:
~~~
$ uribo config init
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

You don't have permission to perform this operation.

## Common causes:
- Writing a ` + "`.uribo`" + ` file into a directory you do not own
- The command's executable is not marked executable

## Things you can try:
- Check file/directory permissions
- Run uribo from a directory you own`,
	}

	issues = map[Id]*Issue{
		commandNotDefinedIssue.Id():    commandNotDefinedIssue,
		uribofileNotFoundIssue.Id():    uribofileNotFoundIssue,
		uribofileParseErrorIssue.Id():  uribofileParseErrorIssue,
		nameNotDefinedIssue.Id():       nameNotDefinedIssue,
		launchFailedIssue.Id():         launchFailedIssue,
		shellArgsUnsupportedIssue.Id(): shellArgsUnsupportedIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		permissionDeniedIssue.Id():     permissionDeniedIssue,
	}
)

// Values returns every catalogued issue ordered by Id.
func Values() []*Issue {
	values := maps.Values(issues)
	slices.SortFunc(values, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
