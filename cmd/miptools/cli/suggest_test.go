// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"list", "list", 0},
		{"lsit", "list", 2},
		{"withdraw", "withdrew", 1},
		{"kitten", "sitting", 3},
	}
	for _, test := range tests {
		if got := levenshtein(test.a, test.b); got != test.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
		}
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{{Name: "init"}, {Name: "migrate"}, {Name: "retrieve"}, {Name: "withdraw"}}
	if got := suggestCommand("migrat", commands); got != "migrate" {
		t.Errorf("suggestCommand(migrat) = %q", got)
	}
	if got := suggestCommand("completely-different", commands); got != "" {
		t.Errorf("suggestCommand(completely-different) = %q, want none", got)
	}
}

func TestSuggestFlag(t *testing.T) {
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flagSet.BoolP("current", "c", false, "")
	flagSet.Bool("all-users", false, "")

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--curent"}, "--current"},
		{[]string{"-c", "--allusers"}, "--all-users"},
		{[]string{"--all-users=true", "--currnet"}, "--current"},
		{[]string{"--zzzzzzzz"}, ""},
		{[]string{"--", "--curent"}, ""},
	}
	for _, test := range tests {
		if got := suggestFlag(test.args, flagSet); got != test.want {
			t.Errorf("suggestFlag(%v) = %q, want %q", test.args, got, test.want)
		}
	}
}
