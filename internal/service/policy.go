package service

import "github.com/emilythestrangee/yatube/backend/internal/auth"

type Action uint8

const (
	ActionList Action = 1 << iota
	ActionRetrieve
	ActionCreate
	ActionUpdate
	ActionDelete
)

const (
	readActions  = ActionList | ActionRetrieve
	writeActions = ActionCreate | ActionUpdate | ActionDelete
	allActions   = readActions | writeActions
)

// Policy is the per-resource action matrix. Disabled actions fail with
// ErrMethodNotAllowed before authentication is considered.
type Policy struct {
	Actions       Action
	AnonymousRead bool
}

func (p Policy) Creatable() bool { return p.Actions&ActionCreate != 0 }
func (p Policy) Updatable() bool { return p.Actions&ActionUpdate != 0 }
func (p Policy) Deletable() bool { return p.Actions&ActionDelete != 0 }

func (p Policy) Check(action Action, principal *auth.Principal) error {
	if p.Actions&action == 0 {
		return ErrMethodNotAllowed
	}
	if principal != nil {
		return nil
	}
	if p.AnonymousRead && action&readActions != 0 {
		return nil
	}
	return ErrUnauthenticated
}

var (
	PostPolicy    = Policy{Actions: allActions, AnonymousRead: true}
	CommentPolicy = Policy{Actions: allActions, AnonymousRead: true}
	GroupPolicy   = Policy{Actions: readActions, AnonymousRead: true}
	FollowPolicy  = Policy{Actions: readActions | ActionCreate | ActionDelete}
)

// isAuthor is the owner check shared by posts and comments.
func isAuthor(authorID int, principal *auth.Principal) bool {
	return principal != nil && principal.ID == authorID
}
