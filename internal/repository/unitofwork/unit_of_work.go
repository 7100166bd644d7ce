package unitofwork

import (
	"context"

	"taskfeed-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	EdgeRepository() contract.EdgeRepository
	MessageRepository() contract.MessageRepository

	TeamRepository() contract.TeamRepository
	ChatRepository() contract.ChatRepository
	MembershipRepository() contract.MembershipRepository

	NotificationRepository() contract.NotificationRepository
}
