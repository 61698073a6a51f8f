package policy

import (
	"testing"

	pkgerrors "github.com/listplus/listplus-backend/pkg/errors"
)

func assertCode(t *testing.T, err error, want pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	coded := pkgerrors.As(err)
	if coded.Code() != want {
		t.Fatalf("expected code %s, got %s (%v)", want, coded.Code(), err)
	}
}

func TestCanView(t *testing.T) {
	list := Membership{Kind: KindList, CreatedBy: "alice", Members: []string{"alice", "bob"}}
	if !list.CanView("bob") {
		t.Fatal("member should view list")
	}
	if list.CanView("eve") {
		t.Fatal("non-member should not view list")
	}

	shop := Membership{Kind: KindShop, CreatedBy: "alice", Members: []string{"alice"}}
	if !shop.CanView("alice") {
		t.Fatal("creator should view shop")
	}
	if shop.CanView("bob") {
		t.Fatal("shops are private to the creator")
	}
}

func TestCheckAddMember(t *testing.T) {
	m := Membership{Kind: KindGroup, CreatedBy: "alice", Members: []string{"alice", "bob"}}

	if err := m.CheckAddMember("alice", "carol"); err != nil {
		t.Fatalf("creator add: %v", err)
	}
	assertCode(t, m.CheckAddMember("bob", "carol"), pkgerrors.CodeForbidden)
	assertCode(t, m.CheckAddMember("alice", "bob"), pkgerrors.CodeConflict)
}

func TestCheckAddMemberListCap(t *testing.T) {
	m := Membership{Kind: KindList, CreatedBy: "alice", Members: []string{"alice", "bob"}}

	err := m.CheckAddMember("alice", "carol")
	assertCode(t, err, pkgerrors.CodeConflict)
	if got := pkgerrors.As(err).Message(); got != "list is full" {
		t.Fatalf("expected capacity message, got %q", got)
	}

	// A duplicate add on a full list reports the membership conflict,
	// not the capacity one.
	err = m.CheckAddMember("alice", "bob")
	if got := pkgerrors.As(err).Message(); got != "user is already a member of this list" {
		t.Fatalf("expected duplicate message, got %q", got)
	}
}

func TestGroupsAreUncapped(t *testing.T) {
	members := []string{"alice"}
	for i := 0; i < 20; i++ {
		members = append(members, string(rune('a'+i))+"-user")
	}
	m := Membership{Kind: KindGroup, CreatedBy: "alice", Members: members}
	if err := m.CheckAddMember("alice", "newcomer"); err != nil {
		t.Fatalf("group add past list cap: %v", err)
	}
}

func TestCheckRemoveMember(t *testing.T) {
	m := Membership{Kind: KindList, CreatedBy: "alice", Members: []string{"alice", "bob"}}

	if err := m.CheckRemoveMember("alice", "bob"); err != nil {
		t.Fatalf("creator removes member: %v", err)
	}
	if err := m.CheckRemoveMember("bob", "bob"); err != nil {
		t.Fatalf("member removes self: %v", err)
	}
	assertCode(t, m.CheckRemoveMember("bob", "alice"), pkgerrors.CodeForbidden)
	assertCode(t, m.CheckRemoveMember("alice", "alice"), pkgerrors.CodeConflict)
}

func TestCheckJoin(t *testing.T) {
	m := Membership{Kind: KindList, CreatedBy: "alice", Members: []string{"alice"}}
	if err := m.CheckJoin("bob"); err != nil {
		t.Fatalf("join with room: %v", err)
	}
	assertCode(t, m.CheckJoin("alice"), pkgerrors.CodeConflict)

	full := Membership{Kind: KindList, CreatedBy: "alice", Members: []string{"alice", "bob"}}
	assertCode(t, full.CheckJoin("carol"), pkgerrors.CodeConflict)
	// Joining a full list you already belong to is the duplicate case.
	err := full.CheckJoin("bob")
	if got := pkgerrors.As(err).Message(); got != "user is already a member of this list" {
		t.Fatalf("expected duplicate message, got %q", got)
	}
}
