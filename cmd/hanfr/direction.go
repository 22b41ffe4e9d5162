package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/hanfr/internal/krdict"
	"github.com/at-ishikawa/hanfr/internal/state"
)

const directionFlagName = "dir"

// Direction is a krdict.Direction accepted as a command line flag.
type Direction krdict.Direction

var _ pflag.Value = (*Direction)(nil)

func (d *Direction) Set(val string) error {
	direction, err := krdict.ParseDirection(val)
	if err != nil {
		return err
	}
	*d = Direction(direction)
	return nil
}

func (d Direction) String() string {
	return string(d)
}

func (d *Direction) Type() string {
	return "direction"
}

func addDirectionFlag(cmd *cobra.Command, direction *Direction) {
	*direction = Direction(krdict.KoreanToFrench)
	cmd.Flags().VarP(direction, directionFlagName, "d", fmt.Sprintf("direction, one of %v (default: the saved preference)", krdict.AllDirections))
}

// resolveDirection returns the flag value when it was given and the saved
// preference otherwise.
func resolveDirection(ctx context.Context, cmd *cobra.Command, direction Direction, preferences *state.Preferences) (krdict.Direction, error) {
	if cmd.Flags().Changed(directionFlagName) {
		return krdict.Direction(direction), nil
	}
	saved, err := preferences.Direction(ctx)
	if err != nil {
		return "", fmt.Errorf("preferences.Direction() > %w", err)
	}
	return saved, nil
}
