package command

import (
	"errors"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/core/port"
)

type Registry struct {
	commands map[string]port.Command
}

func (r *Registry) Register(handler port.Command) {
	if r.commands == nil {
		r.commands = make(map[string]port.Command)
	}

	log.Info().Str("handler", handler.GetCommand()).Msg("adding command handler to registry")
	r.commands[handler.GetCommand()] = handler
}

func (r *Registry) Get(command string) (port.Command, error) {
	log.Debug().Interface("command", command).Msg("fetching command handler from registry")

	if r.commands == nil {
		err := errors.New("can't fetch command, registry not initialized")
		return nil, err
	}

	handler, ok := r.commands[command]
	if !ok {
		return nil, errors.New("command not found")
	}

	return handler, nil
}

// ListCommands returns the registered commands in alphabetical order.
func (r *Registry) ListCommands() []string {
	keys := make([]string, len(r.commands))

	i := 0
	for k := range r.commands {
		keys[i] = k
		i++
	}

	sort.Strings(keys)

	return keys
}

func ParseCommandArgs(args string) string {
	command := strings.Fields(args)
	if len(command) < 2 {
		return ""
	}

	return strings.Join(command[1:], " ")
}

// ParseCommand returns the lowercased first word of args, without a trailing @botname mention.
func ParseCommand(args string) string {
	command := strings.Fields(args)
	if len(command) == 0 {
		return ""
	}

	name, _, _ := strings.Cut(command[0], "@")

	return strings.ToLower(name)
}
