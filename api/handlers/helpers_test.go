package handlers_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"
	"time"

	"github.com/shaj13/go-guardian/auth"

	"github.com/linesmerrill/rider-docs-api/api"
	"github.com/linesmerrill/rider-docs-api/credential"
)

var fixedNow = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

const year = 365 * 24 * time.Hour

type testFile struct {
	name        string
	contentType string
	data        []byte
}

func multipartRequest(t *testing.T, fields map[string]string, files ...testFile) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename="%s"`, f.name))
		if f.contentType != "" {
			h.Set("Content-Type", f.contentType)
		}
		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatal(err)
		}
		part.Write(f.data)
	}
	mw.Close()

	req, err := http.NewRequest("POST", "/api/v1/documents/upload", body)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func asRider(req *http.Request, riderID, email string) *http.Request {
	return req.WithContext(api.WithUser(req.Context(), api.NewRider(riderID, email)))
}

func asVerifier(req *http.Request, id, role string) *http.Request {
	user := auth.NewDefaultUser(id+"@example.com", id, []string{api.VerifierGroup, role}, nil)
	return req.WithContext(api.WithUser(req.Context(), user))
}

func fixedIssuer(signingKey string) credential.Issuer {
	i := credential.NewIssuer(year, credential.NewSigner(signingKey))
	i.Now = func() time.Time { return fixedNow }
	return i
}
