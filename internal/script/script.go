// Package script replays recorded pointer gestures and editing commands
// against a tool manager. Scripts are line based:
//
//	# comment
//	tool brush
//	brush round medium
//	fg red
//	down 10 10
//	move 40 20
//	up 40 20
//	paste stamp.png
//	rotate 90
//
// Coordinates are canvas pixels. Blank lines and lines starting with '#'
// are ignored.
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ErrSyntax is wrapped by every parse error.
var ErrSyntax = errors.New("script: syntax error")

// Command is one parsed script line.
type Command struct {
	Line int
	Name string
	Args []string
}

func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// arity is the accepted argument count range per command.
var arity = map[string][2]int{
	"tool":        {1, 1},
	"brush":       {2, 2},
	"eraser":      {2, 2},
	"fg":          {1, 1},
	"bg":          {1, 1},
	"transparent": {1, 1},
	"down":        {2, 3},
	"move":        {2, 2},
	"up":          {2, 3},
	"dclick":      {2, 2},
	"drag":        {4, 5},
	"tick":        {0, 1},
	"paste":       {1, 1},
	"invert":      {0, 0},
	"flip":        {1, 1},
	"rotate":      {1, 1},
	"clear":       {0, 0},
	"undo":        {0, 1},
	"redo":        {0, 1},
}

// Commands lists the known command names in order.
func Commands() []string {
	out := make([]string, 0, len(arity))
	for name := range arity {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Parse reads a script. Unknown commands and wrong argument counts are
// reported with their line number.
func Parse(r io.Reader) ([]Command, error) {
	var cmds []Command
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		c := Command{Line: line, Name: strings.ToLower(fields[0]), Args: fields[1:]}
		want, ok := arity[c.Name]
		if !ok {
			return nil, fmt.Errorf("%w: line %d: unknown command %q", ErrSyntax, line, c.Name)
		}
		if n := len(c.Args); n < want[0] || n > want[1] {
			return nil, fmt.Errorf("%w: line %d: %s takes %s arguments, got %d", ErrSyntax, line, c.Name, span(want), n)
		}
		cmds = append(cmds, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cmds, nil
}

func span(r [2]int) string {
	if r[0] == r[1] {
		return fmt.Sprint(r[0])
	}
	return fmt.Sprintf("%d-%d", r[0], r[1])
}
