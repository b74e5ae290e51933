package kaggle

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Credentials hold a hub username and API key, as found in kaggle.json.
type Credentials struct {
	Username string `json:"username"`
	Key      string `json:"key"`
}

// Empty reports whether no username is set.
func (c Credentials) Empty() bool {
	return c.Username == ""
}

// DefaultCredentialsPath returns $KAGGLE_CONFIG_DIR/kaggle.json, or ~/.kaggle/kaggle.json.
func DefaultCredentialsPath() string {
	if dir := os.Getenv("KAGGLE_CONFIG_DIR"); dir != "" {
		return filepath.Join(dir, "kaggle.json")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".kaggle", "kaggle.json")
	}
	return filepath.Join(home, ".kaggle", "kaggle.json")
}

// LoadCredentials resolves hub credentials. KAGGLE_USERNAME and KAGGLE_KEY win
// when both are set; otherwise the JSON file at path (or the default path when
// empty) is read. A missing file yields empty credentials, which only allows
// anonymous access to public datasets.
func LoadCredentials(path string) (Credentials, error) {
	if user, key := os.Getenv("KAGGLE_USERNAME"), os.Getenv("KAGGLE_KEY"); user != "" && key != "" {
		return Credentials{Username: user, Key: key}, nil
	}

	if path == "" {
		path = DefaultCredentialsPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			zap.L().Debug("kaggle: no credentials file, continuing anonymously", zap.String("path", path))
			return Credentials{}, nil
		}
		return Credentials{}, eris.Wrapf(err, "kaggle: read credentials %s", path)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, eris.Wrapf(err, "kaggle: parse credentials %s", path)
	}
	return creds, nil
}
