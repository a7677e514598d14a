// Package blob almacena archivos subidos (avatares, imágenes de producto)
// en disco local y produce la URL pública con la que se sirven.
package blob

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// URLPrefix ruta bajo la que el servidor HTTP sirve los archivos.
const URLPrefix = "/uploads"

// DiskStore guarda archivos bajo baseDir con rutas {ownerID}/{uuid}.{ext}.
type DiskStore struct {
	baseDir   string
	publicURL string
}

// NewDiskStore crea el store y asegura el directorio raíz.
func NewDiskStore(baseDir, publicURL string) (*DiskStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de archivos: %w", err)
	}
	return &DiskStore{
		baseDir:   baseDir,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// BaseDir devuelve el directorio raíz (para el handler estático).
func (s *DiskStore) BaseDir() string { return s.baseDir }

// Upload guarda el contenido y devuelve la ruta relativa del archivo.
// El nombre original solo aporta la extensión; el nombre final es un UUID
// para que dos subidas nunca colisionen.
func (s *DiskStore) Upload(ownerID, filename string, r io.Reader) (string, error) {
	owner := sanitize(ownerID)
	if owner == "" {
		return "", fmt.Errorf("owner inválido: %q", ownerID)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	rel := filepath.Join(owner, uuid.New().String()+ext)

	dir := filepath.Join(s.baseDir, owner)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("crear directorio del owner: %w", err)
	}

	f, err := os.Create(filepath.Join(s.baseDir, rel))
	if err != nil {
		return "", fmt.Errorf("crear archivo: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("escribir archivo: %w", err)
	}
	return filepath.ToSlash(rel), nil
}

// PublicURL devuelve la URL desde la que se sirve una ruta relativa.
func (s *DiskStore) PublicURL(rel string) string {
	return s.publicURL + URLPrefix + "/" + strings.TrimLeft(filepath.ToSlash(rel), "/")
}

// Delete elimina un archivo previamente subido. No falla si ya no existe.
func (s *DiskStore) Delete(rel string) error {
	clean := filepath.Clean(rel)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return fmt.Errorf("ruta inválida: %q", rel)
	}
	err := os.Remove(filepath.Join(s.baseDir, clean))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("eliminar archivo: %w", err)
	}
	return nil
}

// sanitize deja solo caracteres seguros para un segmento de ruta.
func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}
