package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"heatline/internal/profile"

	"github.com/go-git/go-git/v5"
)

// CheckSourceFiles 返回 profile 中引用但磁盘上不存在的源文件。
// 相对路径相对于项目根目录解析。
func CheckSourceFiles(root string, p *profile.Profile) []string {
	missing := make([]string, 0)
	for _, f := range p.Files {
		path := f.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		if !fileExists(path) {
			missing = append(missing, f.Path)
		}
	}
	return missing
}

// CheckFreshness 比较 profile 文件的修改时间和 Git HEAD 提交时间。
// HEAD 晚于 profile 时返回警告文本；项目不在 Git 仓库中或没有提交时返回空字符串。
func CheckFreshness(root, profilePath string) (string, error) {
	st, err := os.Stat(profilePath)
	if err != nil {
		return "", err
	}

	r, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", nil
		}
		return "", fmt.Errorf("cannot open repo: %w", err)
	}

	headRef, err := r.Head()
	if err != nil {
		// 空仓库没有 HEAD
		return "", nil
	}
	commit, err := r.CommitObject(headRef.Hash())
	if err != nil {
		return "", fmt.Errorf("HEAD commit is unreachable: %w", err)
	}

	committed := commit.Committer.When
	if committed.After(st.ModTime()) {
		return fmt.Sprintf("profile is older than HEAD commit %s (%s), line numbers may be stale",
			headRef.Hash().String()[:7], committed.Format(time.RFC3339)), nil
	}
	return "", nil
}
