// Package policy holds the membership and authorization rules shared by
// lists, groups and shops. It is purely decisional: callers apply the
// mutation only after the relevant check passes.
package policy

import (
	pkgerrors "github.com/listplus/listplus-backend/pkg/errors"
)

// Kind identifies the shareable resource variant a rule applies to.
type Kind string

const (
	KindList  Kind = "list"
	KindGroup Kind = "group"
	KindShop  Kind = "shop"
)

// ListMemberCap is the hard membership ceiling for lists. Groups carry no
// cap and shops have no membership at all.
const ListMemberCap = 2

// Membership is the authorization view of a shareable resource.
type Membership struct {
	Kind      Kind
	CreatedBy string
	Members   []string
}

// IsCreator reports whether actor created the resource.
func (m Membership) IsCreator(actor string) bool {
	return actor != "" && actor == m.CreatedBy
}

// IsMember reports whether actor is in the members set.
func (m Membership) IsMember(actor string) bool {
	if actor == "" {
		return false
	}
	for _, member := range m.Members {
		if member == actor {
			return true
		}
	}
	return false
}

func (m Membership) atCapacity() bool {
	return m.Kind == KindList && len(m.Members) >= ListMemberCap
}

// CanView reports whether actor may read the resource. Lists and groups are
// visible to members; shops only to their creator.
func (m Membership) CanView(actor string) bool {
	if m.Kind == KindShop {
		return m.IsCreator(actor)
	}
	return m.IsMember(actor)
}

// CanEditMeta reports whether actor may update resource fields.
func (m Membership) CanEditMeta(actor string) bool {
	return m.CanView(actor)
}

// CanDelete reports whether actor may delete the resource.
func (m Membership) CanDelete(actor string) bool {
	return m.IsCreator(actor)
}

// CanRegenerateInvite reports whether actor may roll the invite code.
func (m Membership) CanRegenerateInvite(actor string) bool {
	return m.IsCreator(actor)
}

// CheckAddMember decides whether actor may add target to the members set.
// The duplicate check runs before the capacity check so a request that
// violates both reports the membership conflict deterministically.
func (m Membership) CheckAddMember(actor, target string) error {
	if !m.IsCreator(actor) {
		return ErrNotCreator(m.Kind)
	}
	if m.IsMember(target) {
		return ErrAlreadyMember(m.Kind)
	}
	if m.atCapacity() {
		return ErrFull(m.Kind)
	}
	return nil
}

// CheckRemoveMember decides whether actor may remove target. The creator may
// remove anyone; any member may remove themselves; the creator can never be
// removed, not even by themselves.
func (m Membership) CheckRemoveMember(actor, target string) error {
	if !m.IsCreator(actor) && actor != target {
		return ErrRemoveNotPermitted(m.Kind)
	}
	if target == m.CreatedBy {
		return ErrCannotRemoveCreator(m.Kind)
	}
	return nil
}

// CheckJoin decides whether actor may self-join via an invite code.
// Membership is checked before capacity, matching CheckAddMember.
func (m Membership) CheckJoin(actor string) error {
	if m.IsMember(actor) {
		return ErrAlreadyMember(m.Kind)
	}
	if m.atCapacity() {
		return ErrFull(m.Kind)
	}
	return nil
}

// ErrNotCreator rejects a privileged mutation from a non-creator.
func ErrNotCreator(kind Kind) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeForbidden, "only the "+string(kind)+" creator can do this")
}

// ErrAlreadyMember rejects adding or joining a user twice.
func ErrAlreadyMember(kind Kind) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeConflict, "user is already a member of this "+string(kind))
}

// ErrFull rejects growth past the membership cap.
func ErrFull(kind Kind) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeConflict, string(kind)+" is full")
}

// ErrCannotRemoveCreator rejects removing the creator from membership.
func ErrCannotRemoveCreator(kind Kind) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeConflict, "cannot remove the "+string(kind)+" creator")
}

// ErrRemoveNotPermitted rejects removals by actors who are neither the
// creator nor the target.
func ErrRemoveNotPermitted(kind Kind) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeForbidden, "only the "+string(kind)+" creator can remove members, or members can remove themselves")
}
