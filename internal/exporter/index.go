package exporter

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/specialistvlad/scenepack/internal/fsutil"
)

// Markers of the index template. Each must appear exactly once.
const (
	MarkerStyle     = "<!-- GDJS_CUSTOM_STYLE -->"
	MarkerHTML      = "<!-- GDJS_CUSTOM_HTML -->"
	MarkerCodeFiles = "<!-- GDJS_CODE_FILES -->"
)

// MetadataFile is the descriptor written for upload targets.
const MetadataFile = "gd_metadata.json"

func (r *run) emitIndex() error {
	tmpl, err := fsutil.ReadFile(r.fs, r.opts.IndexTemplate)
	if err != nil {
		return fmt.Errorf("index template: %w", err)
	}
	index := string(tmpl)
	for _, m := range []string{MarkerStyle, MarkerHTML, MarkerCodeFiles} {
		if n := strings.Count(index, m); n != 1 {
			return fmt.Errorf("index template %q must contain %s exactly once, found %d", r.opts.IndexTemplate, m, n)
		}
	}

	fonts, err := r.bundleFonts()
	if err != nil {
		return err
	}
	var css, html strings.Builder
	for _, f := range fonts {
		fmt.Fprintf(&css, "\n@font-face{ font-family : \"gdjs_font_%s\"; src : url('%s') format('truetype'); }", f, f)
		fmt.Fprintf(&html, "\n<div style=\"font-family: 'gdjs_font_%s';\">.</div>", f)
	}

	var scripts strings.Builder
	for _, inc := range r.result.Includes {
		if !fsutil.IsFile(r.fs, path.Join(r.opts.OutDir, inc)) {
			r.warn(StageEmitIndex, "include %q is missing from the bundle and is not loaded", inc)
			continue
		}
		fmt.Fprintf(&scripts, "\t<script src=\"%s\"></script>\n", inc)
	}

	index = strings.Replace(index, MarkerStyle, css.String(), 1)
	index = strings.Replace(index, MarkerHTML, html.String(), 1)
	index = strings.Replace(index, MarkerCodeFiles, scripts.String(), 1)
	return fsutil.WriteFile(r.fs, path.Join(r.opts.OutDir, "index.html"), []byte(index))
}

// bundleFonts lists the TrueType fonts at the bundle root.
func (r *run) bundleFonts() ([]string, error) {
	names, err := fsutil.ListFiles(r.fs, r.opts.OutDir)
	if err != nil {
		return nil, err
	}
	var fonts []string
	for _, n := range names {
		if strings.HasSuffix(strings.ToLower(n), ".ttf") {
			fonts = append(fonts, n)
		}
	}
	return fonts, nil
}

type metadata struct {
	Fonts      []metadataFont `json:"fonts"`
	Scripts    []string       `json:"scripts"`
	WindowSize windowSize     `json:"windowSize"`
}

type metadataFont struct {
	FamilyName string `json:"ffamilyname"`
	Filename   string `json:"filename"`
	Format     string `json:"format"`
}

type windowSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

func (r *run) emitMetadata() error {
	fonts, err := r.bundleFonts()
	if err != nil {
		return err
	}
	md := metadata{
		Fonts:      []metadataFont{},
		Scripts:    []string{},
		WindowSize: windowSize{W: r.project.WindowWidth, H: r.project.WindowHeight},
	}
	for _, f := range fonts {
		md.Fonts = append(md.Fonts, metadataFont{FamilyName: "gdjs_font_" + f, Filename: f, Format: "truetype"})
	}
	for _, inc := range r.result.Includes {
		if !fsutil.IsFile(r.fs, path.Join(r.opts.OutDir, inc)) {
			r.warn(StageEmitMetadata, "include %q is missing from the bundle and is not listed", inc)
			continue
		}
		md.Scripts = append(md.Scripts, inc)
	}

	data, err := json.Marshal(md)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	return fsutil.WriteFile(r.fs, path.Join(r.opts.OutDir, MetadataFile), data)
}
