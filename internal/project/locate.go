package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

// Location 是解析后的项目根目录和 profile 文件路径。
type Location struct {
	Root        string
	ProfilePath string
	// InRepository 表示 Root 来自 Git 工作区检测。
	InRepository bool
}

// Locate 解析项目根目录。path 可以是目录，也可以是项目内的某个文件（如编辑器中打开的源文件）。
// 查找顺序：
//  1. path 所在目录本身包含 profileName
//  2. 包含该目录的 Git 工作区根目录包含 profileName
//  3. 回退到 path 所在目录（由调用方在读取时报告文件不存在）
func Locate(path, profileName string) (Location, error) {
	dir, err := normalizeDir(path)
	if err != nil {
		return Location{}, err
	}

	candidate := filepath.Join(dir, profileName)
	if fileExists(candidate) {
		return Location{Root: dir, ProfilePath: candidate}, nil
	}

	root, err := worktreeRoot(dir)
	if err != nil {
		return Location{}, err
	}
	if root != "" && root != dir {
		if p := filepath.Join(root, profileName); fileExists(p) {
			return Location{Root: root, ProfilePath: p, InRepository: true}, nil
		}
	}

	return Location{Root: dir, ProfilePath: candidate}, nil
}

// worktreeRoot 返回包含 dir 的 Git 工作区根目录，不在仓库中时返回空字符串。
func worktreeRoot(dir string) (string, error) {
	r, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", nil
		}
		return "", fmt.Errorf("open repo %s: %w", dir, err)
	}

	wt, err := r.Worktree()
	if err != nil {
		// bare 仓库没有工作区
		if errors.Is(err, git.ErrIsBareRepository) {
			return "", nil
		}
		return "", fmt.Errorf("worktree %s: %w", dir, err)
	}
	return filepath.Clean(wt.Filesystem.Root()), nil
}

// normalizePath 展开 ~ 并转换为绝对路径。
func normalizePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "."
	}

	if path == "~" || strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

// normalizeDir 返回 path 对应的目录：path 是文件时取其所在目录。
func normalizeDir(path string) (string, error) {
	abs, err := normalizePath(path)
	if err != nil {
		return "", err
	}

	st, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("project path %s: %w", abs, err)
	}
	if !st.IsDir() {
		return filepath.Dir(abs), nil
	}
	return abs, nil
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}
