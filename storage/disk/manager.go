// Package disk is the disk collaborator the buffer pool reads from and
// writes to. It stores every page in one flat file at a fixed offset,
// behind an injected afero.Fs so tests never touch a real disk.
package disk

import (
	"fmt"
	"sync"

	"github.com/spf13/afero"

	"github.com/avdosev/pagekv/storage/page"
)

const fileName = "pages.db"

// Manager implements bufferpool.DiskManager.
type Manager struct {
	fs   afero.Fs
	path string

	mu sync.Mutex
}

// New creates a disk manager rooted at dataDir/pages.db on fs. fs is
// afero.NewOsFs() in production and afero.NewMemMapFs() in tests.
func New(fs afero.Fs, dataDir string) (*Manager, error) {
	if err := fs.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	return &Manager{
		fs:   fs,
		path: dataDir + "/" + fileName,
	}, nil
}

// ReadPage fills buf (len page.PageSize) with the on-disk contents of
// pageID. A page that was never written reads back as all zeroes — the
// backing file is sparse.
func (m *Manager) ReadPage(pageID int64, buf []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, err := m.fs.OpenFile(m.path, osReadWriteCreate, 0o600)
	if err != nil {
		return fmt.Errorf("opening page file: %w", err)
	}
	defer f.Close()

	clear(buf)

	offset := pageID * page.PageSize

	n, err := f.ReadAt(buf, offset)
	if err != nil && n == 0 {
		// Reading past EOF on a page never written: treat as a zero page,
		// matching the donor's implicit-sparse-file behavior.
		if isEOF(err) {
			return nil
		}
		return fmt.Errorf("reading page %d: %w", pageID, err)
	}

	return nil
}

// WritePage persists buf as the contents of pageID, growing the backing
// file as needed.
func (m *Manager) WritePage(pageID int64, buf []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, err := m.fs.OpenFile(m.path, osReadWriteCreate, 0o600)
	if err != nil {
		return fmt.Errorf("opening page file: %w", err)
	}
	defer f.Close()

	offset := pageID * page.PageSize

	if _, err := f.WriteAt(buf, offset); err != nil {
		return fmt.Errorf("writing page %d: %w", pageID, err)
	}

	return nil
}
