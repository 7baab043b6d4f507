package console

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/pixil98/go-rpg/internal/core"
	"github.com/pixil98/go-rpg/internal/game"
)

// World is the slice of game.World the console drives.
type World interface {
	Player() game.ActorInfo
	Actors() []game.ActorInfo
	FindByName(name string) (game.ActorInfo, error)
	PlayerAttack(name string) (game.ActorInfo, error)
	PlayerMove(dest core.Vec3) error
	PlayerStop() error
}

// Roster lists the operators currently connected.
type Roster interface {
	Active() []string
}

// CommandFunc runs one command for a session.
type CommandFunc func(ctx context.Context, s *Session, args []string) error

type command struct {
	name  string
	usage string
	help  string
	fn    CommandFunc
}

// Handler parses operator input and runs the matching command.
type Handler struct {
	world    World
	roster   Roster
	commands map[string]*command
	order    []string
}

func NewHandler(world World) *Handler {
	h := &Handler{
		world:    world,
		commands: map[string]*command{},
	}

	h.register("look", "look", "List everyone nearby.", h.look)
	h.register("status", "status", "Show your health, position and target.", h.status)
	h.register("attack", "attack <name>", "Attack someone.", h.attack)
	h.register("move", "move <x> <z>", "Walk to a point on the ground.", h.move)
	h.register("stop", "stop", "Stop whatever you are doing.", h.stop)
	h.register("route", "route <name>", "Show someone's patrol route.", h.route)
	h.register("who", "who", "List everyone connected to the console.", h.who)
	h.register("help", "help", "List commands.", h.help)
	h.register("quit", "quit", "Leave the game.", h.quit)

	return h
}

// SetRoster lets the who command see sessions on every listener. Without
// one it only knows about the asking session.
func (h *Handler) SetRoster(r Roster) {
	h.roster = r
}

func (h *Handler) register(name, usage, help string, fn CommandFunc) {
	h.commands[name] = &command{name: name, usage: usage, help: help, fn: fn}
	h.order = append(h.order, name)
}

// Exec runs one line of input. Blank lines do nothing.
func (h *Handler) Exec(ctx context.Context, s *Session, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	name := strings.ToLower(fields[0])
	cmd, ok := h.commands[name]
	if !ok {
		cmd = h.byPrefix(name)
	}
	if cmd == nil {
		return NewUserError(fmt.Sprintf("Unknown command: %s", fields[0]))
	}

	return cmd.fn(ctx, s, fields[1:])
}

// byPrefix lets "att" stand in for "attack" when no other command shares
// the prefix.
func (h *Handler) byPrefix(prefix string) *command {
	var found *command
	for _, name := range h.order {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if found != nil {
			return nil
		}
		found = h.commands[name]
	}
	return found
}

func (h *Handler) look(_ context.Context, s *Session, _ []string) error {
	player := h.world.Player()
	var lines []string
	for _, a := range h.world.Actors() {
		if a.Side == game.SidePlayer {
			continue
		}
		lines = append(lines, describe(a, player.Position))
	}

	if len(lines) == 0 {
		return s.Writeln("You are alone.")
	}
	return s.Writeln(strings.Join(lines, "\n"))
}

func (h *Handler) status(_ context.Context, s *Session, _ []string) error {
	p := h.world.Player()

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", p.Name)
	fmt.Fprintf(&b, "Health: %.0f/%.0f\n", p.Points, p.MaxPoints)
	fmt.Fprintf(&b, "Position: %s\n", p.Position)
	switch {
	case !p.Alive:
		b.WriteString("You are dead.")
	case p.Target != "":
		fmt.Fprintf(&b, "Fighting: %s", p.Target)
	case p.Moving:
		b.WriteString("Walking.")
	default:
		b.WriteString("Standing still.")
	}
	return s.Writeln(b.String())
}

func (h *Handler) attack(_ context.Context, s *Session, args []string) error {
	if len(args) == 0 {
		return NewUserError("Attack whom?")
	}
	name := strings.Join(args, " ")

	target, err := h.world.PlayerAttack(name)
	if err != nil {
		return worldError(err, name)
	}
	return s.Writeln(fmt.Sprintf("You attack %s!", target.Name))
}

func (h *Handler) move(_ context.Context, s *Session, args []string) error {
	if len(args) != 2 {
		return NewUserError("Usage: move <x> <z>")
	}
	x, errX := parseCoord(args[0])
	z, errZ := parseCoord(args[1])
	if errX != nil || errZ != nil {
		return NewUserError("Coordinates must be numbers.")
	}

	dest := core.Vec3{X: x, Y: h.world.Player().Position.Y, Z: z}
	if err := h.world.PlayerMove(dest); err != nil {
		return worldError(err, "")
	}
	return s.Writeln(fmt.Sprintf("You head for %s.", dest))
}

func (h *Handler) stop(_ context.Context, s *Session, _ []string) error {
	if err := h.world.PlayerStop(); err != nil {
		return worldError(err, "")
	}
	return s.Writeln("You stop.")
}

func (h *Handler) route(_ context.Context, s *Session, args []string) error {
	if len(args) == 0 {
		return NewUserError("Whose route?")
	}
	name := strings.Join(args, " ")

	a, err := h.world.FindByName(name)
	if err != nil {
		return worldError(err, name)
	}

	if a.Route.Len() == 0 {
		return s.Writeln(fmt.Sprintf("%s has no route.", a.Name))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s patrols:", a.Name)
	for i, wp := range a.Route.Waypoints {
		marker := " "
		if i == a.Waypoint {
			marker = "*"
		}
		fmt.Fprintf(&b, "\n %s %d. %s", marker, i+1, wp)
	}
	return s.Writeln(b.String())
}

func (h *Handler) who(_ context.Context, s *Session, _ []string) error {
	ops := []string{s.Operator}
	if h.roster != nil {
		ops = h.roster.Active()
	}

	lines := []string{fmt.Sprintf("Connected (%d):", len(ops))}
	for _, op := range ops {
		if op == s.Operator {
			op += " (you)"
		}
		lines = append(lines, op)
	}
	return s.Writeln(strings.Join(lines, "\n"))
}

func (h *Handler) help(_ context.Context, s *Session, _ []string) error {
	names := slices.Clone(h.order)
	slices.Sort(names)

	width := 0
	for _, name := range names {
		width = max(width, len(h.commands[name].usage))
	}

	var lines []string
	for _, name := range names {
		cmd := h.commands[name]
		lines = append(lines, fmt.Sprintf("%-*s  %s", width, cmd.usage, cmd.help))
	}
	return s.Writeln(strings.Join(lines, "\n"))
}

func (h *Handler) quit(_ context.Context, s *Session, _ []string) error {
	s.Quit = true
	return s.Writeln("Goodbye.")
}

// worldError turns game errors into something the operator can act on.
func worldError(err error, name string) error {
	switch {
	case errors.Is(err, game.ErrPlayerDead):
		return NewUserError("You are dead.")
	case errors.Is(err, game.ErrActorNotFound):
		return NewUserError(fmt.Sprintf("You don't see %s here.", name))
	case errors.Is(err, game.ErrTargetDead):
		return NewUserError(fmt.Sprintf("%s is already dead.", name))
	case errors.Is(err, game.ErrBadPosition):
		return NewUserError("You can't go there.")
	default:
		return err
	}
}
