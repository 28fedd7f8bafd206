// Package commands contains the operations that change orders and users.
// Every handler validates its command, opens a unit of work, and commits
// only when the whole operation succeeded.
package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// Unit of Work interfaces used by the command handlers. Each handler asks for
// the narrowest one it needs.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides the order repository bound to the transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// UserRepoFactory provides the user repository bound to the transaction.
	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// UserUoW is used by operations that only touch users.
	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	// UserUoWFactory creates user units of work.
	UserUoWFactory interface {
		Create() UserUoW
	}

	// UoW spans orders and users: order creation reads the shop and the
	// customer, transitions read the shop location and candidate partners.
	UoW interface {
		TxManager
		OrderRepoFactory
		UserRepoFactory
	}

	// UoWFactory creates cross-aggregate units of work.
	UoWFactory interface {
		Create() UoW
	}
)
