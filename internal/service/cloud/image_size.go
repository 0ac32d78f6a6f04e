package cloud

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var icoMagic = []byte{0, 0, 1, 0}

// ImageSize 读取图片宽高，支持 png/jpeg/gif/bmp/webp 与 ico。
// ico 文件取第一个图标的尺寸。
func ImageSize(localPath string) (int, int, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	r := bufio.NewReader(f)
	head, err := r.Peek(len(icoMagic))
	if err == nil && bytes.Equal(head, icoMagic) {
		return icoSize(r)
	}
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

// icoSize ICONDIR(6 字节) 之后是 16 字节的 ICONDIRENTRY，宽高各一个字节，0 表示 256。
func icoSize(r io.Reader) (int, int, error) {
	var header [6]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return 0, 0, err
	}
	if binary.LittleEndian.Uint16(header[4:]) == 0 {
		return 0, 0, errors.New("ico file has no images")
	}
	var entry [16]byte
	if _, err := io.ReadFull(r, entry[:]); err != nil {
		return 0, 0, err
	}
	width, height := int(entry[0]), int(entry[1])
	if width == 0 {
		width = 256
	}
	if height == 0 {
		height = 256
	}
	return width, height, nil
}
