package console

import (
	"context"
	"fmt"
	"strconv"
)

// Command is a main-menu entry. The numeric value is what the user types.
type Command int

// Menu commands.
const (
	CmdExit Command = iota
	CmdListMovies
	CmdAddMovie
	CmdDeleteMovie
	CmdUpdateMovie
	CmdStats
	CmdRandomMovie
	CmdSearchMovie
	CmdSortedByRating
	CmdGenerateWebsite
	CmdSwitchUser

	cmdCount
)

var commandLabels = [cmdCount]string{
	CmdExit:            "Exit",
	CmdListMovies:      "List movies",
	CmdAddMovie:        "Add movie",
	CmdDeleteMovie:     "Delete movie",
	CmdUpdateMovie:     "Update movie",
	CmdStats:           "Stats",
	CmdRandomMovie:     "Random movie",
	CmdSearchMovie:     "Search movie",
	CmdSortedByRating:  "Movies sorted by rating",
	CmdGenerateWebsite: "Generate website",
	CmdSwitchUser:      "Switch user",
}

func (c Command) String() string {
	if c < 0 || c >= cmdCount {
		return fmt.Sprintf("Command(%d)", int(c))
	}
	return commandLabels[c]
}

// ParseCommand converts a typed menu choice into a Command.
func ParseCommand(s string) (Command, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n >= int(cmdCount) {
		return 0, false
	}
	return Command(n), true
}

type handler func(c *Console, ctx context.Context) error

// handlers maps every command except CmdExit to its implementation.
var handlers = map[Command]handler{
	CmdListMovies:      (*Console).listMovies,
	CmdAddMovie:        (*Console).addMovie,
	CmdDeleteMovie:     (*Console).deleteMovie,
	CmdUpdateMovie:     (*Console).updateMovie,
	CmdStats:           (*Console).stats,
	CmdRandomMovie:     (*Console).randomMovie,
	CmdSearchMovie:     (*Console).searchMovie,
	CmdSortedByRating:  (*Console).sortedByRating,
	CmdGenerateWebsite: (*Console).generateWebsite,
	CmdSwitchUser:      (*Console).switchUser,
}
