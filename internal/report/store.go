package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ArtifactStore: rapor dosyalarını kök klasör altında türe göre saklar.
// Kök yol ortam değişkeninden okunmaz, constructor ile açıkça verilir.
type ArtifactStore struct {
	root string
}

func NewArtifactStore(root string) *ArtifactStore {
	return &ArtifactStore{root: root}
}

func (s *ArtifactStore) Root() string { return s.root }

// UniqueFileName: zaman damgası + rastgele sonek. Aynı slug için eşzamanlı
// çağrılarda çakışmaz; sıralı sayaç eşzamanlılık altında güvenli olmadığı
// için bilinçli olarak kullanılmıyor.
func (s *ArtifactStore) UniqueFileName(slug, ext string) string {
	ts := time.Now().Format("20060102_150405")
	suffix := strings.Split(uuid.New().String(), "-")[0]
	return fmt.Sprintf("%s_%s_%s.%s", slug, ts, suffix, ext)
}

// ResolvePath: <root>/<slug>/<name> yolunu üretir, tür klasörü yoksa oluşturur
func (s *ArtifactStore) ResolvePath(slug, name string) (string, error) {
	dir := filepath.Join(s.root, slug)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", wrapError(KindStorage, err, "rapor klasörü oluşturulamadı: %s", dir)
	}
	return filepath.Join(dir, name), nil
}

// Write: önce aynı klasörde geçici dosyaya yazar, sonra rename eder.
// Herhangi bir adım başarısız olursa hedef yolda okunabilir yarım dosya kalmaz.
func (s *ArtifactStore) Write(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".rapor-*")
	if err != nil {
		return wrapError(KindStorage, err, "geçici dosya oluşturulamadı")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return wrapError(KindStorage, err, "rapor dosyası yazılamadı")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return wrapError(KindStorage, err, "rapor dosyası kapatılamadı")
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return wrapError(KindStorage, err, "rapor dosyası taşınamadı")
	}
	return nil
}
