package app

import (
	"errors"
	"fmt"

	ksm "github.com/keeper-security/secrets-manager-go/core"
)

// credentialRecord is the part of a Keeper record read for Entra
// credentials. *ksm.Record satisfies it.
type credentialRecord interface {
	Password() string
	GetFieldValueByType(fieldType string) string
}

// loadKeeperCredentials fills the client secret, and the client id when it
// is not configured, from a Keeper Secrets Manager record.
func loadKeeperCredentials(cfg *Config) error {
	if cfg.KSMConfig == "" {
		return nil
	}

	sm := ksm.NewSecretsManager(&ksm.ClientOptions{
		Config: ksm.NewMemoryKeyValueStorage(cfg.KSMConfig),
	})

	var filter []string
	if cfg.KSMRecordUID != "" {
		filter = append(filter, cfg.KSMRecordUID)
	}

	records, err := sm.GetSecrets(filter)
	if err != nil {
		return fmt.Errorf("keeper: fetch records: %w", err)
	}
	if len(records) == 0 {
		return errors.New("keeper: no record available for the configured application")
	}

	recs := make([]credentialRecord, len(records))
	for i, r := range records {
		recs[i] = r
	}
	return applyCredentialRecord(cfg, recs)
}

// applyCredentialRecord takes the first record with a password.
func applyCredentialRecord(cfg *Config, records []credentialRecord) error {
	for _, r := range records {
		secret := r.Password()
		if secret == "" {
			continue
		}
		cfg.ClientSecret = secret
		if cfg.ClientID == "" {
			cfg.ClientID = r.GetFieldValueByType("login")
		}
		return nil
	}
	return errors.New("keeper: no record carries a password")
}
