/*
Copyright 2025 Trident Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package httpapi

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/silsoftware/ldml-api/langtag"
	"github.com/silsoftware/ldml-api/langtags"
	"github.com/silsoftware/ldml-api/ldml"
	"github.com/silsoftware/ldml-api/profiles"
)

const streamChunkSize = 16 * 1024

// helpHTML is the static landing page served for "/" and "/index.html".
const helpHTML = `<!DOCTYPE html>
<html>
<head><title>ldml-api</title></head>
<body>
<h1>ldml-api</h1>
<p>Resolve a BCP 47 language tag to its SLDR LDML document: GET /&lt;tag&gt;</p>
</body>
</html>
`

// langtagsFileHandler streams "<profile.langtags_dir>/langtags.<ext>" as a
// download, ETag derived from file metadata.
func langtagsFileHandler(w http.ResponseWriter, r *http.Request) {
	prof, ok := profileFromContext(r.Context())
	if !ok {
		http.Error(w, "no profile selected", http.StatusInternalServerError)
		return
	}
	ext := chi.URLParam(r, "ext")
	path := filepath.Join(prof.LangtagsDir, "langtags."+ext)

	info, err := os.Stat(path)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	filename := "langtags." + ext
	w.Header().Set("ETag", StrongETag(fileMetadataToken(info)))
	w.Header().Set("Content-Type", contentTypeForFilename(filename))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	f, err := os.Open(path)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()
	streamFile(w, f)
}

// wsHandler is the main per-tag LDML resolution endpoint.
func wsHandler(w http.ResponseWriter, r *http.Request) {
	prof, ok := profileFromContext(r.Context())
	if !ok {
		http.Error(w, "no profile selected", http.StatusInternalServerError)
		return
	}

	tag, err := langtag.Parse(chi.URLParam(r, "ws_id"))
	if err != nil {
		http.Error(w, "malformed language tag", http.StatusBadRequest)
		return
	}

	query := r.URL.Query()

	if query.Get("query") == "tags" {
		ts, ok := prof.LangTags.OrthographicNormalForm(tag)
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, equivalenceListing(ts))
		return
	}

	ts, path, err := findLDMLFile(tag, prof, query.Get("flatten"))
	if err != nil {
		log.Error().Err(err).Str("tag", tag.AsStr()).Msg("find_ldml_file failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if ts == nil || path == "" {
		http.NotFound(w, r)
		return
	}

	info, statErr := os.Stat(path)
	if statErr != nil {
		http.NotFound(w, r)
		return
	}

	incParam := strings.TrimSpace(query.Get("inc[]"))
	uidParam := query.Get("uid")
	ext := query.Get("ext")
	if ext == "" {
		ext = "xml"
	}
	filename := strings.ReplaceAll(tag.AsStr(), "-", "_") + "." + ext

	if incParam == "" && uidParam == "" {
		_, etag, err := loadDocumentAndETag(path, info)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("ETag", etag)
		w.Header().Set("Content-Type", contentTypeForFilename(filename))
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		f, err := os.Open(path)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer f.Close()
		streamFile(w, f)
		return
	}

	doc, etag, err := loadDocumentAndETag(path, info)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if incParam != "" {
		topLevels := strings.Split(incParam, ",")
		for i := range topLevels {
			topLevels[i] = strings.TrimSpace(topLevels[i])
		}
		doc.Subset(topLevels)
	}
	if uidParam != "" {
		uid, err := ParseUniqueID(uidParam)
		if err != nil {
			http.Error(w, "malformed uid", http.StatusBadRequest)
			return
		}
		if err := doc.SetUID(uid.Uint32()); err != nil {
			http.Error(w, "document has no sil:identity element", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("ETag", WeakenETag(etag))
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	io.WriteString(w, doc.Serialize())
}

// findLDMLFile resolves tag to a TagSet via orthographic normal form, then
// walks its candidate tags most-specific first, returning the first path
// that exists on disk under the profile's SLDR tree.
func findLDMLFile(tag langtag.Tag, prof *profiles.Profile, flattenParam string) (*langtags.TagSet, string, error) {
	ts, ok := prof.LangTags.OrthographicNormalForm(tag)
	if !ok {
		return nil, "", nil
	}

	flatten := true // flatten defaults to on, unlike Toggle's own default
	if flattenParam != "" {
		flatten = ParseToggle(flattenParam).Bool()
	}
	sldrBase := filepath.Join(prof.SldrDir, "unflat")
	if flatten {
		sldrBase = filepath.Join(prof.SldrDir, "flat")
	}

	candidates := ts.Iter()
	for i := len(candidates) - 1; i >= 0; i-- {
		t := candidates[i]
		lang := t.Lang()
		if lang == "" {
			continue
		}
		underscored := strings.ReplaceAll(t.AsStr(), "-", "_")
		path := filepath.Join(sldrBase, lang[:1], underscored+".xml")
		if _, err := os.Stat(path); err == nil {
			return ts, path, nil
		}
	}
	return ts, "", nil
}

// loadDocumentAndETag loads the LDML file at path and computes its ETag:
// the sil:identity revid attribute if present, else a token derived from
// file metadata.
func loadDocumentAndETag(path string, info os.FileInfo) (*ldml.Document, string, error) {
	doc, err := ldml.Load(path)
	if err != nil {
		return nil, "", err
	}
	identities := doc.FindNodes(ldml.NamedIn(ldml.SilNamespace, "identity"))
	if len(identities) > 0 {
		if revid, ok := identities[0].Attr("revid"); ok && revid != "" {
			return doc, StrongETag(revid), nil
		}
	}
	return doc, StrongETag(fileMetadataToken(info)), nil
}

func fileMetadataToken(info os.FileInfo) string {
	return fmt.Sprintf("%x-%x", info.ModTime().UnixNano(), info.Size())
}

// streamFile copies f to w in 16 KiB chunks, matching the corpus's
// zero-copy-friendly streaming contract.
func streamFile(w http.ResponseWriter, f io.Reader) {
	buf := make([]byte, streamChunkSize)
	if _, err := io.CopyBuffer(w, f, buf); err != nil {
		log.Error().Err(err).Msg("streaming response body")
	}
}

// contentTypeForFilename derives a Content-Type from filename's extension,
// falling back to application/octet-stream when unrecognized.
func contentTypeForFilename(filename string) string {
	ct := mime.TypeByExtension(filepath.Ext(filename))
	if ct == "" {
		return "application/octet-stream"
	}
	return ct
}

// equivalenceListing renders ts.String() followed by each region-set and
// variant-set rendering, newline-joined.
func equivalenceListing(ts *langtags.TagSet) string {
	lines := []string{ts.String()}
	for _, set := range ts.RegionSets() {
		lines = append(lines, tagSliceToString(set))
	}
	for _, set := range ts.VariantSets() {
		lines = append(lines, tagSliceToString(set))
	}
	return strings.Join(lines, "\n")
}

func tagSliceToString(tags []langtag.Tag) string {
	strs := make([]string, len(tags))
	for i, t := range tags {
		strs[i] = t.AsStr()
	}
	return strings.Join(strs, "=")
}

// helpOrRedirectHandler serves "/", "/index.html", and any unmatched path:
// query=langtags redirects to the langtags download, query=alltags
// responds with the retired-feature message, query=tags demands a ws_id,
// and anything else returns the static help page.
func helpOrRedirectHandler(w http.ResponseWriter, r *http.Request) {
	prof, ok := profileFromContext(r.Context())
	if !ok {
		http.Error(w, "no profile selected", http.StatusInternalServerError)
		return
	}

	switch r.URL.Query().Get("query") {
	case "langtags":
		http.Redirect(w, r, "/langtags.json?"+prof.Name, http.StatusPermanentRedirect)
	case "alltags":
		http.Error(w, "query=alltags was retired; request the tag directly with query=tags instead", http.StatusNotFound)
	case "tags":
		http.Error(w, "query=tags requires a language tag path segment", http.StatusBadRequest)
	default:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, helpHTML)
	}
}

