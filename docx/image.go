package docx

import (
	"bytes"
	_ "image/gif"
	_ "image/jpeg"

	"github.com/disintegration/imaging"
	"github.com/fumiama/go-docx"
	"github.com/fwojciec/notiondocx"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const emuPerInch = 914400

// normalizeImage returns data in a format Word renders inline. PNG, JPEG
// and GIF pass through unchanged; WebP, BMP and TIFF are re-encoded as PNG.
func normalizeImage(data []byte) ([]byte, error) {
	kind, err := filetype.Image(data)
	if err != nil || kind == filetype.Unknown {
		return nil, notiondocx.Errorf(notiondocx.EIMAGE, "unsupported image format")
	}

	switch kind.MIME.Value {
	case "image/png", "image/jpeg", "image/gif":
		return data, nil
	case "image/webp", "image/bmp", "image/tiff":
		img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
		if err != nil {
			return nil, notiondocx.Wrapf(notiondocx.EIMAGE, err, "failed to decode %s image", kind.Extension)
		}
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
			return nil, notiondocx.Wrapf(notiondocx.EIMAGE, err, "failed to encode %s image as png", kind.Extension)
		}
		return buf.Bytes(), nil
	}
	return nil, notiondocx.Errorf(notiondocx.EIMAGE, "unsupported image format: %s", kind.MIME.Value)
}

// scaleDrawing resizes the inline drawing in run to width EMU, keeping its
// aspect ratio.
func scaleDrawing(run *docx.Run, width int64) {
	for _, c := range run.Children {
		d, ok := c.(*docx.Drawing)
		if !ok || d.Inline == nil || d.Inline.Extent == nil || d.Inline.Extent.CX == 0 {
			continue
		}
		height := width * d.Inline.Extent.CY / d.Inline.Extent.CX
		d.Inline.Size(width, height)
	}
}
