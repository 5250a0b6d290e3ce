package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore はアップロードファイルをローカルディスクへ保存する FileStore 実装。
// 返す URL は baseURL と保存パスの連結で、配信は HTTP 層の静的ファイル
// ハンドラが担う。
type LocalStore struct {
	root    string
	baseURL string
}

// NewLocalStore は保存先ディレクトリと公開 URL プレフィックスを束縛した
// LocalStore を生成する。
func NewLocalStore(root, baseURL string) *LocalStore {
	return &LocalStore{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Put は r の内容を root 配下の path へ書き込み、取得用 URL を返す。
// root の外へ出るパスは拒否する。同じパスへの再アップロードは上書きになる。
func (s *LocalStore) Put(ctx context.Context, path string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	cleaned := filepath.Clean(filepath.FromSlash(path))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("保存パスが不正です: %q", path)
	}

	target := filepath.Join(s.root, cleaned)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", err
	}

	file, err := os.Create(target)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if _, err := io.Copy(file, r); err != nil {
		os.Remove(target)
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", err
	}

	return s.baseURL + "/" + filepath.ToSlash(cleaned), nil
}
