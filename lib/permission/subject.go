// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

package permission

import (
	"fmt"
	"os/user"
	"slices"
	"strconv"
)

// Subject is the user on whose behalf access is checked.
type Subject struct {
	// Name is the login name, used in messages.
	Name string

	// UID is the numeric user ID.
	UID uint32

	// GIDs are the primary group followed by supplementary groups.
	GIDs []uint32
}

// LookupSubject resolves name through the user database once: UID,
// primary group, and every group listing the user as a member.
func LookupSubject(name string) (Subject, error) {
	account, err := user.Lookup(name)
	if err != nil {
		return Subject{}, fmt.Errorf("looking up user %q: %w", name, err)
	}
	uid, err := parseID(account.Uid)
	if err != nil {
		return Subject{}, fmt.Errorf("user %q: uid: %w", name, err)
	}
	primary, err := parseID(account.Gid)
	if err != nil {
		return Subject{}, fmt.Errorf("user %q: gid: %w", name, err)
	}

	subject := Subject{Name: name, UID: uid, GIDs: []uint32{primary}}

	groupIDs, err := account.GroupIds()
	if err != nil {
		return Subject{}, fmt.Errorf("listing groups of user %q: %w", name, err)
	}
	for _, groupID := range groupIDs {
		gid, err := parseID(groupID)
		if err != nil {
			return Subject{}, fmt.Errorf("user %q: group %q: %w", name, groupID, err)
		}
		if !slices.Contains(subject.GIDs, gid) {
			subject.GIDs = append(subject.GIDs, gid)
		}
	}
	return subject, nil
}

func parseID(value string) (uint32, error) {
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(id), nil
}

// InGroup reports whether gid is one of the subject's groups.
func (s Subject) InGroup(gid uint32) bool {
	return slices.Contains(s.GIDs, gid)
}

// Class names the permission triplet that applied to a subject.
type Class string

const (
	ClassUser  Class = "user"
	ClassGroup Class = "group"
	ClassWorld Class = "world"
)

// SelectTriplet returns the permission bits of mode that apply to
// subject for a file owned by uid:gid, and which triplet they came
// from. Only the owner match is tried before the group match: an owner
// whose own bits deny is denied even if the group bits would allow.
func SelectTriplet(subject Subject, uid, gid, mode uint32) (Access, Class) {
	switch {
	case uid == subject.UID:
		return Access(mode>>6) & 7, ClassUser
	case subject.InGroup(gid):
		return Access(mode>>3) & 7, ClassGroup
	default:
		return Access(mode) & 7, ClassWorld
	}
}
