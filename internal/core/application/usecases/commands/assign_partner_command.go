package commands

import (
	"errors"
	"math"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// DefaultAssignBatchSize bounds how many Accepted orders one retry run visits.
const DefaultAssignBatchSize = 50

var ErrAssignPartnerCommandIsNotConstructed = errors.New(
	"AssignPartnerCommand must be created via NewAssignPartnerCommand constructor",
)

// AssignPartnerCommand retries matching for Accepted orders that are still
// waiting for a delivery partner.
type AssignPartnerCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

func NewAssignPartnerCommand(batchSize int) (AssignPartnerCommand, error) {
	if batchSize <= 0 {
		return AssignPartnerCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, math.MaxInt)
	}

	return AssignPartnerCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AssignPartnerCommand) Validate() error {
	return c.guard.Validate(ErrAssignPartnerCommandIsNotConstructed)
}

func (c AssignPartnerCommand) BatchSize() int {
	return c.batchSize
}
