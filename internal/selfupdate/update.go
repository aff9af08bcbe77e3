package selfupdate

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strings"
)

// Stage names reported to the progress callback, in order.
const (
	StageCheck    = "check"
	StageDownload = "download"
	StageVerify   = "verify"
	StageExtract  = "extract"
	StageApply    = "apply"
	StageDone     = "done"
)

// Progress is one step of an update.
type Progress struct {
	Stage   string
	Message string
}

// Update replaces the running binary with the latest release, or with target
// when it is non-empty. It returns the installed version.
func (c *Checker) Update(ctx context.Context, current, target string, progress func(Progress)) (string, error) {
	if progress == nil {
		progress = func(Progress) {}
	}
	if current == DevVersion {
		return "", ErrDevBuild
	}

	tag := canonical(target)
	if tag == "" {
		progress(Progress{StageCheck, "Checking for latest version..."})
		rel, err := c.Check(ctx, current)
		if err != nil {
			return "", fmt.Errorf("check for updates: %w", err)
		}
		if !rel.UpdateAvailable {
			return "", ErrAlreadyLatest
		}
		tag = rel.Version
	}

	asset, err := assetNameFor(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return "", err
	}
	releaseURL := fmt.Sprintf("%s/%s/%s/releases/download/%s", strings.TrimRight(c.downloadBaseURL, "/"), c.owner, c.repo, tag)

	progress(Progress{StageDownload, fmt.Sprintf("Downloading %s...", tag)})
	archive, err := c.fetch(ctx, releaseURL+"/"+asset)
	if err != nil {
		return "", fmt.Errorf("download archive: %w", err)
	}

	progress(Progress{StageVerify, "Verifying checksum..."})
	sums, err := c.fetch(ctx, releaseURL+"/checksums.txt")
	if err != nil {
		return "", fmt.Errorf("download checksums: %w", err)
	}
	want, ok := parseChecksums(sums)[asset]
	if !ok {
		return "", fmt.Errorf("no checksum for %s in checksums.txt", asset)
	}
	if err := verifyChecksum(archive, want); err != nil {
		return "", err
	}

	progress(Progress{StageExtract, "Extracting binary..."})
	bin, err := extractBinary(archive, asset)
	if err != nil {
		return "", fmt.Errorf("extract binary: %w", err)
	}

	progress(Progress{StageApply, "Applying update..."})
	path, err := c.execPath()
	if err != nil {
		return "", fmt.Errorf("resolve executable path: %w", err)
	}
	sum := sha256.Sum256(bin)
	if err := replaceFile(path, bin, sum[:]); err != nil {
		return "", fmt.Errorf("apply update: %w", err)
	}

	progress(Progress{StageDone, fmt.Sprintf("Updated to %s", tag)})
	return tag, nil
}

// assetNameFor returns the release archive name goreleaser produces for a platform.
func assetNameFor(goos, goarch string) (string, error) {
	if goos == "darwin" {
		return "levelup_Darwin_all.tar.gz", nil
	}
	arch, ok := map[string]string{"amd64": "x86_64", "arm64": "arm64", "386": "i386"}[goarch]
	if !ok {
		return "", fmt.Errorf("unsupported architecture: %s", goarch)
	}
	switch goos {
	case "linux":
		return "levelup_Linux_" + arch + ".tar.gz", nil
	case "windows":
		return "levelup_Windows_" + arch + ".zip", nil
	}
	return "", fmt.Errorf("unsupported operating system: %s", goos)
}

func (c *Checker) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}
