package outreach

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jordan-wright/email"
)

// ExportDrafts writes each email option as an RFC 5322 .eml file so
// operators can open drafts directly in a mail client. Files are named
// <business>_option_<label>.eml under dir.
func ExportDrafts(dir, businessName, contactEmail string, options []EmailOption) ([]string, error) {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("create draft dir: %w", err)
	}

	var paths []string
	for i, opt := range options {
		if i >= len(optionLabels) {
			break
		}

		mail := email.NewEmail()
		if contactEmail != "" {
			mail.To = []string{contactEmail}
		}
		mail.Subject = opt.Subject
		mail.Text = []byte(opt.Body)
		if opt.Angle != "" {
			mail.Headers.Set("X-Outreach-Angle", opt.Angle)
		}

		raw, err := mail.Bytes()
		if err != nil {
			return paths, fmt.Errorf("render draft %s: %w", optionLabels[i], err)
		}

		name := fmt.Sprintf("%s_option_%s.eml", safeFileName(businessName), optionLabels[i])
		path := filepath.Join(dir, name)
		err = os.WriteFile(path, raw, 0o644)
		if err != nil {
			return paths, fmt.Errorf("write draft %s: %w", name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func safeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "unknown"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
