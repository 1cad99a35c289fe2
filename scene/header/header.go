package header

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/giuliojiang/pbrt-v3-blender-exporter/log"
	"github.com/giuliojiang/pbrt-v3-blender-exporter/scene"
	"github.com/giuliojiang/pbrt-v3-blender-exporter/types"
)

// Lines returns the statements written before WorldBegin. The exporter flips
// the Y axis, so the camera rotation axis and location have their Y component
// negated.
func Lines(s *Settings) []string {
	sx, sy := s.FilmSize()
	rot, loc := s.Camera.Rotation, s.Camera.Location
	f := types.FormatFloat

	return []string{
		fmt.Sprintf(`Film "image" "integer xresolution" %d "integer yresolution" %d`, sx, sy),
		fmt.Sprintf(`Integrator "%s"`, s.Integrator),
		fmt.Sprintf(`Sampler "%s" "integer pixelsamples" %d`, s.Sampler, s.PixelSamples),
		"Scale -1 1 1",
		fmt.Sprintf("Rotate %s %s %s %s", f(degrees(rot[0])), f(rot[1]), f(-rot[2]), f(rot[3])),
		fmt.Sprintf("Translate %s %s %s", f(loc[0]), f(-loc[1]), f(loc[2])),
		fmt.Sprintf(`Camera "perspective" "float fov" [%s]`, f(degrees(s.Camera.Angle/2.0))),
	}
}

// Assemble writes the header, the exported world body and the closing
// WorldEnd statement to w.
func Assemble(w io.Writer, s *Settings, body io.Reader) error {
	bw := bufio.NewWriter(w)
	for _, line := range Lines(s) {
		bw.WriteString(line + "\n")
	}
	bw.WriteString(scene.WorldBegin + "\n")

	var last byte = '\n'
	buf := make([]byte, 32*1024)
	for {
		n, err := body.Read(buf)
		if n > 0 {
			bw.Write(buf[:n])
			last = buf[n-1]
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}

	// Make sure WorldEnd starts on its own line
	if last != '\n' {
		bw.WriteByte('\n')
	}
	bw.WriteString(scene.WorldEnd + "\n")

	return bw.Flush()
}

// AssembleFile writes a complete scene file to outPath using the exported
// world body at bodyPath.
func AssembleFile(s *Settings, bodyPath, outPath string) error {
	logger := log.New("assembler")

	body, err := os.Open(bodyPath)
	if err != nil {
		return err
	}
	defer body.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}

	err = Assemble(out, s, body)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(outPath)
		return err
	}

	sx, sy := s.FilmSize()
	logger.Noticef(`assembled "%s" (%dx%d, %s integrator)`, outPath, sx, sy, s.Integrator)
	return nil
}

func degrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}
