// Package command turns chat text like `!valorant --e=Scott,Jacob` into
// lifecycle controller calls and renders the replies. It owns no state;
// every request carries its guild, origin channel and author.
package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/scrimkit/scrimbot/internal/app/orch"
	"github.com/scrimkit/scrimbot/internal/core"
	"github.com/scrimkit/scrimbot/internal/domain"
)

const Prefix = "!"

// Request is one command issued in an approved channel.
type Request struct {
	Guild  domain.GuildID
	Origin domain.ChannelID
	Author domain.ParticipantID
	Text   string
}

type Dispatcher struct {
	Ctrl *orch.Controller
}

// Handle runs one command and returns the reply text. Empty reply means
// the line was not a command.
func (d *Dispatcher) Handle(ctx context.Context, req Request) string {
	if !strings.HasPrefix(req.Text, Prefix) {
		return ""
	}
	cmd, rest := Split(strings.TrimPrefix(req.Text, Prefix))
	args := ParseArgs(rest)
	log.Info().Str("module", "command").Str("guild", string(req.Guild)).Str("cmd", cmd).Msg("command received")

	switch {
	case cmd == "help":
		return helpText
	case cmd == "complete":
		if args.Bool("help") {
			return completeHelpText
		}
		return d.complete(ctx, args)
	case cmd == "init":
		return d.init(ctx, req.Guild)
	case d.Ctrl.Maps.Supports(cmd):
		if args.Bool("help") {
			return gameHelpText(cmd)
		}
		return d.start(ctx, req, cmd, args)
	default:
		return fmt.Sprintf("Unknown command `%s`. Type `!help` for the command list.", cmd)
	}
}

func (d *Dispatcher) start(ctx context.Context, req Request, game string, args Args) string {
	summary, err := d.Ctrl.StartMatch(ctx, req.Guild, req.Origin, req.Author, game, args.List("e"))
	if err != nil {
		log.Error().Err(err).Str("module", "command").Str("guild", string(req.Guild)).Str("game", game).Msg("start match failed")
		switch {
		case errors.Is(err, core.ErrInsufficientPool):
			return "Too few players in the waiting room to form two teams."
		case errors.Is(err, core.ErrUnsupportedGame):
			return fmt.Sprintf("Unable to select a map for `%s`. Contact an admin.", game)
		default:
			return "There was an error setting up the match. Error: " + err.Error()
		}
	}
	return summary.Text()
}

func (d *Dispatcher) complete(ctx context.Context, args Args) string {
	id, ok := args["id"]
	if !ok || id == "" {
		return "Error: Complete command must contain --id flag"
	}
	m, err := d.Ctrl.Complete(ctx, domain.MatchID(id))
	if err != nil {
		if errors.Is(err, domain.ErrUnknownMatch) {
			return "An invalid ID was provided. Please try again."
		}
		return "There was an error completing the match. Error: " + err.Error()
	}
	return fmt.Sprintf("Match %s was concluded", m.ID)
}

func (d *Dispatcher) init(ctx context.Context, guild domain.GuildID) string {
	category, waiting, err := d.Ctrl.Init(ctx, guild)
	if err != nil {
		return "Init failed: " + err.Error()
	}
	return fmt.Sprintf("Ready: category `%s` and waiting room `%s` are set up.", category.Name, waiting.Name)
}

const helpText = "Syntax: !command --flag=value" +
	"\nPossible commands: valorant, complete, init" +
	"\nType `!command --help` for command options"

const completeHelpText = "Complete Help: `!complete --flag=value`" +
	"\nPossible flags:" +
	"\n`--id`: The ID of the match to complete"

func gameHelpText(game string) string {
	return fmt.Sprintf("%[1]s Help: `!%[1]s --flag=value ...`", game) +
		fmt.Sprintf("\nDescription: Initiates a new %s scrim.", game) +
		"\nPossible flags:" +
		"\n`--e`: Players to exclude from team selection present in the waiting room; comma separated. " +
		fmt.Sprintf("`!%s --e=Scott,Jacob`", game)
}
