package auth

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"smart-extract/config"
	"smart-extract/utils"
)

type UsersFile struct {
	Users map[string]UserInfo `yaml:"users"`
}

type UserInfo struct {
	Hash  string `yaml:"hash"`
	Salt  string `yaml:"salt"`
	Admin bool   `yaml:"admin"`
}

func LoadUsers(file string) (*UsersFile, error) {
	var uf UsersFile
	root := utils.GetProjectRoot()
	cfgPath := filepath.Join(root, file)
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, &uf); err != nil {
		return nil, err
	}
	return &uf, nil
}

// CheckPassword valide un couple user/password contre users.yaml.
// Renvoie (admin, ok).
func CheckPassword(cfg *config.Config, users *UsersFile, username, password string) (bool, bool) {
	u, ok := users.Users[username]
	if !ok {
		return false, false
	}
	passHash, err := ApplyHashMacro(cfg.Auth.HashMacro, password, username, u.Salt, cfg.Auth.Salt)
	if err != nil || passHash != u.Hash {
		return false, false
	}
	return u.Admin, true
}

// ApplyHashMacro applique la macro de hash de la config, ex :
// {sha256}({password}{salt}{globalsalt})
func ApplyHashMacro(macro, password, user, userSalt, globalSalt string) (string, error) {
	replace := func(s string) string {
		s = strings.ReplaceAll(s, "{password}", password)
		s = strings.ReplaceAll(s, "{user}", user)
		s = strings.ReplaceAll(s, "{salt}", userSalt)
		s = strings.ReplaceAll(s, "{globalsalt}", globalSalt)
		return s
	}
	macro = strings.TrimSpace(macro)
	if strings.HasPrefix(macro, "{sha256}") {
		plain := extractBetween(macro, "{sha256}(", ")")
		return sha256Hash(replace(plain)), nil
	}
	if strings.HasPrefix(macro, "{sha1}") {
		plain := extractBetween(macro, "{sha1}(", ")")
		return sha1Hash(replace(plain)), nil
	}
	if strings.HasPrefix(macro, "{md5}") {
		plain := extractBetween(macro, "{md5}(", ")")
		return md5Hash(replace(plain)), nil
	}
	if strings.HasPrefix(macro, "{clear}") {
		plain := extractBetween(macro, "{clear}(", ")")
		return replace(plain), nil
	}
	return "", errors.New("unsupported hash macro")
}

func extractBetween(str, start, end string) string {
	a := strings.Index(str, start)
	if a == -1 {
		return ""
	}
	a += len(start)
	b := strings.LastIndex(str, end)
	if b == -1 || b <= a {
		return ""
	}
	return str[a:b]
}

func sha256Hash(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

func sha1Hash(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:])
}

func md5Hash(s string) string {
	h := md5.Sum([]byte(s))
	return hex.EncodeToString(h[:])
}
