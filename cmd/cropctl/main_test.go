// Cropwise - Seasonal Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropwise

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/cropwise/internal/advisor"
	"github.com/tomtom215/cropwise/internal/auth"
)

const testDistricts = `state,district,lat,lon,historical_crops
Punjab,Ludhiana,30.9010,75.8573,"wheat,rice"
Punjab,Amritsar,31.6340,74.8723,wheat
Kerala,Idukki,9.8500,76.9700,"cardamom,tea"
`

// writeConfig lays out a config file pointing at temp reference data and a
// badger native store.
func writeConfig(t *testing.T) string {
	t.Helper()
	return writeConfigWith(t, "native_cache:\n  store: badger\n  badger_dir: {dir}/native\n")
}

// writeConfigWith appends extra YAML, with {dir} replaced by the temp dir.
func writeConfigWith(t *testing.T, extra string) string {
	t.Helper()

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "districts.csv")
	if err := os.WriteFile(csvPath, []byte(testDistricts), 0o600); err != nil {
		t.Fatalf("write districts: %v", err)
	}
	cfgPath := filepath.Join(dir, "config.yaml")
	yaml := "data:\n  districts_csv: " + csvPath + "\n  yield_json: " + filepath.Join(dir, "none.json") + "\n" +
		strings.ReplaceAll(extra, "{dir}", dir)
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfgPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := executeIn(t, "", args...)
	return out, err
}

func executeIn(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestRecommend_Table(t *testing.T) {
	cfg := writeConfig(t)

	out, err := execute(t, "--config", cfg, "--no-weather",
		"recommend", "--state", "Punjab", "--district", "Ludhiana", "--season", "rabi_early", "--top-k", "3", "--native")
	if err != nil {
		t.Fatalf("recommend error = %v", err)
	}
	for _, want := range []string{"Ludhiana / Punjab", "Crop", "Probability", "Confidence"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRecommend_JSON(t *testing.T) {
	cfg := writeConfig(t)

	out, err := execute(t, "--config", cfg, "--no-weather", "--json",
		"recommend", "--state", "Punjab", "--district", "Amritsar", "--season", "kharif", "--top-k", "2")
	if err != nil {
		t.Fatalf("recommend error = %v", err)
	}
	var res advisor.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if res.District != "Amritsar" || res.Season != "kharif" {
		t.Errorf("result = %s/%s, want Amritsar/kharif", res.District, res.Season)
	}
	if len(res.Recommendations) != 2 {
		t.Errorf("got %d recommendations, want 2", len(res.Recommendations))
	}
}

func TestRecommend_Errors(t *testing.T) {
	cfg := writeConfig(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing district flag", []string{"recommend", "--state", "Punjab"}},
		{"unknown season", []string{"recommend", "--state", "Punjab", "--district", "Ludhiana", "--season", "monsoon"}},
		{"bad log level", []string{"--log-level", "loud", "seasons"}},
		{"bad invalidate season", []string{"cache", "invalidate", "--state", "Punjab", "--district", "Ludhiana", "--season", "winter"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--config", cfg, "--no-weather"}, tt.args...)
			if _, err := execute(t, args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNative(t *testing.T) {
	cfg := writeConfig(t)

	out, err := execute(t, "--config", cfg, "--no-weather", "--json",
		"native", "--state", "Kerala", "--district", "Idukki")
	if err != nil {
		t.Fatalf("native error = %v", err)
	}
	var res advisor.NativeResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if res.District != "Idukki" {
		t.Errorf("District = %q, want Idukki", res.District)
	}
}

func TestReferenceCommands(t *testing.T) {
	cfg := writeConfig(t)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"seasons", []string{"seasons"}, []string{"kharif", "rabi_early", "zaid", "(current)"}},
		{"states", []string{"districts"}, []string{"States", "Kerala", "Punjab"}},
		{"districts", []string{"districts", "Punjab"}, []string{"Amritsar", "Ludhiana"}},
		{"unknown state", []string{"districts", "Atlantis"}, []string{"(none)"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--config", cfg, "--no-weather"}, tt.args...)
			out, err := execute(t, args...)
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestCacheCommands(t *testing.T) {
	cfg := writeConfig(t)
	base := []string{"--config", cfg, "--no-weather"}

	out, errOut, err := executeIn(t, "", append(base, "cache", "warm")...)
	if err != nil {
		t.Fatalf("cache warm error = %v", err)
	}
	if !strings.Contains(out, "warmed 3 districts") {
		t.Errorf("warm output = %q", out)
	}
	if !strings.Contains(errOut, "stop the server first") {
		t.Errorf("badger warning missing from stderr: %q", errOut)
	}

	out, err = execute(t, append(base, "cache", "invalidate", "--state", "Punjab", "--district", "Ludhiana", "--season", "kharif")...)
	if err != nil {
		t.Fatalf("cache invalidate error = %v", err)
	}
	if !strings.Contains(out, "invalidated Ludhiana / Punjab") {
		t.Errorf("invalidate output = %q", out)
	}

	out, err = execute(t, append(base, "cache", "purge")...)
	if err != nil {
		t.Fatalf("cache purge error = %v", err)
	}
	if !strings.Contains(out, "native cache purged (badger)") {
		t.Errorf("purge output = %q", out)
	}
}

func TestCacheCommands_MemoryStoreRefused(t *testing.T) {
	configs := map[string]string{
		"explicit memory": writeConfigWith(t, "native_cache:\n  store: memory\n"),
		"default store":   writeConfigWith(t, ""),
	}
	for name, cfg := range configs {
		for _, sub := range [][]string{
			{"cache", "warm"},
			{"cache", "purge"},
			{"cache", "invalidate", "--state", "Punjab", "--district", "Ludhiana"},
		} {
			t.Run(name+"/"+sub[1], func(t *testing.T) {
				out, err := execute(t, append([]string{"--config", cfg, "--no-weather"}, sub...)...)
				if !errors.Is(err, errMemoryStore) {
					t.Fatalf("error = %v, want errMemoryStore", err)
				}
				if out != "" {
					t.Errorf("stdout = %q, want nothing", out)
				}
			})
		}
	}
}

func TestAuthHashPassword(t *testing.T) {
	out, _, err := executeIn(t, "correct-horse-battery\n", "auth", "hash-password")
	if err != nil {
		t.Fatalf("hash-password error = %v", err)
	}
	hash := strings.TrimSpace(out)
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("correct-horse-battery")); err != nil {
		t.Errorf("printed hash does not match the password: %v", err)
	}

	if _, _, err := executeIn(t, "short\n", "auth", "hash-password"); err == nil {
		t.Error("short password accepted")
	}
	if _, _, err := executeIn(t, "", "auth", "hash-password"); err == nil {
		t.Error("empty stdin accepted")
	}
}

func TestAuthToken(t *testing.T) {
	const secret = "0123456789abcdef0123456789abcdef"
	cfg := writeConfigWith(t, "security:\n  jwt_secret: "+secret+"\n")

	out, err := execute(t, "--config", cfg, "auth", "token", "--username", "ops")
	if err != nil {
		t.Fatalf("auth token error = %v", err)
	}
	verifier, err := auth.NewJWTAuthenticator(secret, time.Hour)
	if err != nil {
		t.Fatalf("NewJWTAuthenticator() error = %v", err)
	}
	claims, err := verifier.ValidateToken(strings.TrimSpace(out))
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.Username != "ops" || claims.Role != auth.RoleAdmin {
		t.Errorf("claims = %+v", claims)
	}

	_, err = execute(t, "--config", writeConfigWith(t, ""), "auth", "token")
	if err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Errorf("error = %v, want JWT_SECRET not configured", err)
	}
}
