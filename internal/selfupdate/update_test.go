package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTarGz(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: name, Mode: 0o755, Size: int64(len(content)), Typeflag: tar.TypeReg}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func makeZip(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(name)
	require.NoError(t, err)
	_, err = w.Write(content)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func sha(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func TestAssetNameFor(t *testing.T) {
	tests := []struct {
		goos, goarch string
		want         string
		wantErr      bool
	}{
		{"darwin", "arm64", "levelup_Darwin_all.tar.gz", false},
		{"darwin", "amd64", "levelup_Darwin_all.tar.gz", false},
		{"linux", "amd64", "levelup_Linux_x86_64.tar.gz", false},
		{"linux", "arm64", "levelup_Linux_arm64.tar.gz", false},
		{"linux", "386", "levelup_Linux_i386.tar.gz", false},
		{"windows", "amd64", "levelup_Windows_x86_64.zip", false},
		{"linux", "mips", "", true},
		{"plan9", "amd64", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.goarch, func(t *testing.T) {
			got, err := assetNameFor(tt.goos, tt.goarch)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseChecksums(t *testing.T) {
	data := []byte("abc123  levelup_Linux_x86_64.tar.gz\ndef456  levelup_Windows_x86_64.zip\n\nmalformed\n")
	got := parseChecksums(data)
	assert.Equal(t, map[string]string{
		"levelup_Linux_x86_64.tar.gz": "abc123",
		"levelup_Windows_x86_64.zip":  "def456",
	}, got)
}

func TestVerifyChecksum(t *testing.T) {
	data := []byte("binary")
	assert.NoError(t, verifyChecksum(data, sha(data)))
	assert.ErrorIs(t, verifyChecksum(data, sha([]byte("other"))), ErrChecksum)
}

func TestExtractBinary(t *testing.T) {
	payload := []byte("#!/bin/sh\necho levelup\n")

	got, err := extractBinary(makeTarGz(t, "levelup", payload), "levelup_Linux_x86_64.tar.gz")
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	got, err = extractBinary(makeZip(t, "dist/levelup.exe", payload), "levelup_Windows_x86_64.zip")
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	_, err = extractBinary(makeTarGz(t, "README.md", payload), "levelup_Linux_x86_64.tar.gz")
	assert.ErrorContains(t, err, "not found")
}

func TestReplaceFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "levelup")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o755))

	data := []byte("new")
	sum := sha256.Sum256(data)
	require.NoError(t, replaceFile(target, data, sum[:]))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	info, err := os.Stat(target)
	require.NoError(t, err)
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "staging dir should be removed")
}

func TestUpdate_DevBuild(t *testing.T) {
	_, err := NewChecker().Update(context.Background(), DevVersion, "", nil)
	assert.ErrorIs(t, err, ErrDevBuild)
}

func TestUpdate_AlreadyLatest(t *testing.T) {
	srv := releaseServer(t, "v1.0.0")
	_, err := NewChecker(WithBaseURL(srv.URL)).Update(context.Background(), "v1.0.0", "", nil)
	assert.ErrorIs(t, err, ErrAlreadyLatest)
}

type releaseFiles struct {
	archive   []byte
	checksums string
}

func downloadServer(t *testing.T, tag string, files releaseFiles) *httptest.Server {
	t.Helper()
	asset, err := assetNameFor(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		t.Skipf("unsupported platform: %v", err)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/abhisek/levelup/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprintf(w, `{"tag_name":%q,"html_url":"x"}`, tag)
	})
	base := "/abhisek/levelup/releases/download/" + tag + "/"
	mux.HandleFunc(base+asset, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(files.archive)
	})
	mux.HandleFunc(base+"checksums.txt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(files.checksums))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func platformArchive(t *testing.T, payload []byte) (string, []byte) {
	t.Helper()
	asset, err := assetNameFor(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		t.Skipf("unsupported platform: %v", err)
	}
	if runtime.GOOS == "windows" {
		return asset, makeZip(t, "levelup.exe", payload)
	}
	return asset, makeTarGz(t, "levelup", payload)
}

func TestUpdate_EndToEnd(t *testing.T) {
	payload := []byte("new levelup binary")
	asset, archive := platformArchive(t, payload)
	srv := downloadServer(t, "v2.0.0", releaseFiles{
		archive:   archive,
		checksums: sha(archive) + "  " + asset + "\n",
	})

	target := filepath.Join(t.TempDir(), "levelup")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o755))

	c := NewChecker(
		WithBaseURL(srv.URL),
		WithDownloadBaseURL(srv.URL),
		withExecPath(func() (string, error) { return target, nil }),
	)

	var stages []string
	got, err := c.Update(context.Background(), "v1.0.0", "", func(p Progress) {
		stages = append(stages, p.Stage)
	})
	require.NoError(t, err)
	assert.Equal(t, "v2.0.0", got)
	assert.Equal(t, []string{StageCheck, StageDownload, StageVerify, StageExtract, StageApply, StageDone}, stages)

	written, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, payload, written)
}

func TestUpdate_PinnedVersionSkipsCheck(t *testing.T) {
	payload := []byte("pinned")
	asset, archive := platformArchive(t, payload)
	srv := downloadServer(t, "v1.5.0", releaseFiles{
		archive:   archive,
		checksums: sha(archive) + "  " + asset + "\n",
	})

	target := filepath.Join(t.TempDir(), "levelup")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o755))

	c := NewChecker(
		WithDownloadBaseURL(srv.URL),
		withExecPath(func() (string, error) { return target, nil }),
	)
	var stages []string
	got, err := c.Update(context.Background(), "v2.0.0", "1.5.0", func(p Progress) {
		stages = append(stages, p.Stage)
	})
	require.NoError(t, err)
	assert.Equal(t, "v1.5.0", got)
	assert.NotContains(t, stages, StageCheck)
}

func TestUpdate_ChecksumMismatch(t *testing.T) {
	asset, archive := platformArchive(t, []byte("tampered"))
	srv := downloadServer(t, "v2.0.0", releaseFiles{
		archive:   archive,
		checksums: sha([]byte("something else")) + "  " + asset + "\n",
	})

	target := filepath.Join(t.TempDir(), "levelup")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o755))

	c := NewChecker(
		WithBaseURL(srv.URL),
		WithDownloadBaseURL(srv.URL),
		withExecPath(func() (string, error) { return target, nil }),
	)
	_, err := c.Update(context.Background(), "v1.0.0", "", nil)
	assert.ErrorIs(t, err, ErrChecksum)

	old, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, []byte("old"), old)
}

func TestUpdate_MissingChecksumEntry(t *testing.T) {
	_, archive := platformArchive(t, []byte("x"))
	srv := downloadServer(t, "v2.0.0", releaseFiles{
		archive:   archive,
		checksums: "abc  other_asset.tar.gz\n",
	})
	c := NewChecker(WithBaseURL(srv.URL), WithDownloadBaseURL(srv.URL))
	_, err := c.Update(context.Background(), "v1.0.0", "", nil)
	assert.ErrorContains(t, err, "no checksum")
}
