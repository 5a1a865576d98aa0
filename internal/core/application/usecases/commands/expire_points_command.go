package commands

import (
	"errors"

	"bakery/internal/pkg/guard"
)

var ErrExpirePointsCommandIsNotConstructed = errors.New(
	"ExpirePointsCommand must be created via NewExpirePointsCommand constructor",
)

// ExpirePointsCommand triggers a sweep over earned ledger entries whose
// expiry date has passed. A parameterless command driven by the periodic
// batch job.
type ExpirePointsCommand struct {
	guard guard.ConstructorGuard
}

// NewExpirePointsCommand creates a new command to trigger the expiry sweep.
func NewExpirePointsCommand() ExpirePointsCommand {
	return ExpirePointsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrExpirePointsCommandIsNotConstructed if validation fails.
func (c *ExpirePointsCommand) Validate() error {
	return c.guard.Validate(
		ErrExpirePointsCommandIsNotConstructed,
	)
}
