// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"slices"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestBindFlagsTypesAndDefaults(t *testing.T) {
	var params struct {
		ConfigFlag
		Name    string   `flag:"name,n" default:"alice"`
		Verbose bool     `flag:"verbose" default:"true"`
		Count   int      `flag:"count" default:"3"`
		Users   []string `flag:"user"`
		Ignored string
	}
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&params, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if params.Name != "alice" || !params.Verbose || params.Count != 3 {
		t.Fatalf("defaults not applied: %+v", params)
	}

	err := flagSet.Parse([]string{"-n", "bob", "--verbose=false", "--count", "7",
		"--user", "x", "--user", "y,z", "--config", "/etc/miptools.yaml"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if params.Name != "bob" || params.Verbose || params.Count != 7 {
		t.Errorf("parsed values wrong: %+v", params)
	}
	if !slices.Equal(params.Users, []string{"x", "y", "z"}) {
		t.Errorf("Users = %v", params.Users)
	}
	if params.ConfigPath != "/etc/miptools.yaml" {
		t.Errorf("ConfigPath = %q", params.ConfigPath)
	}
	if flagSet.Lookup("Ignored") != nil {
		t.Error("untagged field was bound")
	}
}

func TestBindFlagsRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		params any
		want   string
	}{
		{"not a pointer", struct{}{}, "pointer to a struct"},
		{"bad bool default", &struct {
			F bool `flag:"f" default:"maybe"`
		}{}, "default for --f"},
		{"bad int default", &struct {
			F int `flag:"f" default:"ten"`
		}{}, "default for --f"},
		{"unsupported type", &struct {
			F float32 `flag:"f"`
		}{}, "unsupported type"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := BindFlags(test.params, pflag.NewFlagSet("test", pflag.ContinueOnError))
			if err == nil || !strings.Contains(err.Error(), test.want) {
				t.Errorf("BindFlags error = %v, want containing %q", err, test.want)
			}
		})
	}
}

func TestFlagsFromParamsPanicsOnProgrammingError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("FlagsFromParams did not panic")
		}
	}()
	FlagsFromParams("broken", struct{}{})
}
