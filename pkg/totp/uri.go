package totp

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const uriScheme = "otpauth"

// BuildURI creates the otpauth:// provisioning URI consumed by authenticator
// apps and QR encoders. The layout follows the Key Uri Format:
// https://github.com/google/google-authenticator/wiki/Key-Uri-Format
//
//	otpauth://totp/{issuer}:{account}?secret=..&issuer=..&algorithm=..&digits=..&period=..
//
// Issuer and account are trimmed and NFC-normalized, so visually identical
// labels always produce the same URI. ParseURI therefore returns the
// normalized labels: a decomposed "e\u0301" comes back as "\u00e9".
func BuildURI(p Params) (string, error) {
	p = p.WithDefaults()
	if err := p.Validate(); err != nil {
		return "", err
	}

	issuer := norm.NFC.String(strings.TrimSpace(p.Issuer))
	account := norm.NFC.String(strings.TrimSpace(p.AccountName))
	if issuer == "" {
		return "", errors.Join(ErrInvalidParameter, ErrMissingIssuer)
	}
	if account == "" {
		return "", errors.Join(ErrInvalidParameter, ErrMissingAccountName)
	}

	var sb strings.Builder
	sb.WriteString(uriScheme)
	sb.WriteString("://totp/")
	sb.WriteString(escapeLabel(issuer))
	sb.WriteByte(':')
	sb.WriteString(escapeLabel(account))
	sb.WriteString("?secret=")
	sb.WriteString(p.Secret.Base32())
	sb.WriteString("&issuer=")
	sb.WriteString(escapeQuery(issuer))
	sb.WriteString("&algorithm=")
	sb.WriteString(string(p.Algorithm))
	sb.WriteString("&digits=")
	sb.WriteString(strconv.Itoa(p.Digits))
	sb.WriteString("&period=")
	sb.WriteString(strconv.Itoa(p.Period))

	return sb.String(), nil
}

// ParseURI reads an otpauth://totp URI back into Params. The issuer query
// parameter wins over the label prefix; absent optional fields get defaults.
func ParseURI(raw string) (Params, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Params{}, errors.Join(ErrInvalidParameter, ErrInvalidURI, err)
	}
	if !strings.EqualFold(u.Scheme, uriScheme) || !strings.EqualFold(u.Host, "totp") {
		return Params{}, errors.Join(ErrInvalidParameter, ErrInvalidURI)
	}

	labelIssuer, account, err := splitLabel(u.EscapedPath())
	if err != nil {
		return Params{}, err
	}

	q := u.Query()
	secret, err := ParseSecret(q.Get("secret"))
	if err != nil {
		return Params{}, err
	}

	p := Params{
		Secret:      secret,
		AccountName: account,
		Issuer:      labelIssuer,
	}
	if v := q.Get("issuer"); v != "" {
		p.Issuer = v
	}
	if v := q.Get("algorithm"); v != "" {
		if p.Algorithm, err = ParseAlgorithm(v); err != nil {
			return Params{}, err
		}
	}
	if v := q.Get("digits"); v != "" {
		if p.Digits, err = strconv.Atoi(v); err != nil {
			return Params{}, errors.Join(ErrInvalidParameter, ErrInvalidDigits, err)
		}
	}
	if v := q.Get("period"); v != "" {
		if p.Period, err = strconv.Atoi(v); err != nil {
			return Params{}, errors.Join(ErrInvalidParameter, ErrInvalidPeriod, err)
		}
	}

	p = p.WithDefaults()
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// escapeLabel percent-encodes one side of the label. The colon is escaped
// too because it separates issuer from account.
func escapeLabel(s string) string {
	return strings.ReplaceAll(url.PathEscape(s), ":", "%3A")
}

// escapeQuery percent-encodes a query value with %20 for spaces, which
// every authenticator app decodes; "+" is not universally understood.
func escapeQuery(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// splitLabel splits the escaped path at the first literal colon, before
// unescaping, so an encoded %3A inside either part survives.
func splitLabel(escapedPath string) (issuer, account string, err error) {
	label := strings.TrimPrefix(escapedPath, "/")
	rawIssuer, rawAccount, found := strings.Cut(label, ":")
	if !found {
		rawIssuer, rawAccount = "", label
	}
	if issuer, err = url.PathUnescape(rawIssuer); err != nil {
		return "", "", errors.Join(ErrInvalidParameter, ErrInvalidURI, err)
	}
	if account, err = url.PathUnescape(rawAccount); err != nil {
		return "", "", errors.Join(ErrInvalidParameter, ErrInvalidURI, err)
	}
	return strings.TrimSpace(issuer), strings.TrimSpace(account), nil
}
