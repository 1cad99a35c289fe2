package material

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/giuliojiang/pbrt-v3-blender-exporter/asset"
	"github.com/giuliojiang/pbrt-v3-blender-exporter/log"
	"github.com/giuliojiang/pbrt-v3-blender-exporter/types"
)

// Parse a wavefront material library. Besides the standard Kd/Ks/Ke statements
// and their map_ variants, the following extensions are recognized:
//   - type <matte|plastic|mirror|mix> : explicit pbrt material type
//   - Pr / map_Pr                     : plastic roughness
//   - Kr / map_Kr                     : mirror reflectivity
//   - mix <first> <second>            : mix material slots
//   - amount / map_amount             : mix amount
//   - KeScaler                        : emission intensity
//   - include <material>              : copy the settings of a previous material
//
// Materials without an explicit type become plastic if they define a specular
// color or texture and matte otherwise.
func parseMTL(res *asset.Resource) (*Library, error) {
	logger := log.New("mtl reader")
	logger.Infof(`parsing material library "%s"`, res.Path())

	var (
		lineNum     int
		err         error
		lib         = NewLibrary()
		curMaterial *Descriptor
		explicit    = make(map[string]bool, 0)
	)

	scanner := bufio.NewScanner(res)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		if lineTokens[0] == "newmtl" {
			if len(lineTokens) < 2 {
				return nil, emitError(res.Path(), lineNum, `unsupported syntax for "newmtl"; expected 1 argument; got 0`)
			}

			matName := strings.Join(lineTokens[1:], " ")
			if _, exists := lib.Lookup(matName); exists {
				return nil, emitError(res.Path(), lineNum, `material "%s" already defined`, matName)
			}

			curMaterial = NewDescriptor(matName, KindMatte)
			lib.Add(curMaterial)
			continue
		}

		if curMaterial == nil {
			return nil, emitError(res.Path(), lineNum, `got "%s" without a "newmtl"`, lineTokens[0])
		}

		switch lineTokens[0] {
		case "include":
			if len(lineTokens) < 2 {
				return nil, emitError(res.Path(), lineNum, `unsupported syntax for "%s"; expected 1 argument; got %d`, lineTokens[0], len(lineTokens)-1)
			}

			baseName := strings.Join(lineTokens[1:], " ")
			base, exists := lib.Lookup(baseName)
			if !exists {
				return nil, emitError(res.Path(), lineNum, `could not include unknown material "%s"`, baseName)
			}

			// Overwrite material but keep the original name
			name := curMaterial.Name
			*curMaterial = *base
			curMaterial.Name = name
			explicit[name] = explicit[baseName]
		case "type":
			if len(lineTokens) != 2 {
				return nil, emitError(res.Path(), lineNum, `unsupported syntax for "type"; expected 1 argument; got %d`, len(lineTokens)-1)
			}
			curMaterial.Kind = KindFromName(lineTokens[1])
			curMaterial.RawKind = lineTokens[1]
			explicit[curMaterial.Name] = true
		case "Kd", "Ks", "Kr", "Ke", "amount":
			var target *types.Vec3
			switch lineTokens[0] {
			case "Kd":
				target = &curMaterial.Diffuse.Color
			case "Ks":
				target = &curMaterial.Specular.Color
			case "Kr":
				target = &curMaterial.Reflectivity.Color
			case "Ke":
				target = &curMaterial.EmitColor
				if curMaterial.EmitIntensity == 0 {
					curMaterial.EmitIntensity = 1
				}
			case "amount":
				target = &curMaterial.Amount.Color
			}

			*target, err = parseVec3(lineTokens)
		case "Pr":
			curMaterial.Roughness.Value, err = parseFloat(lineTokens)
		case "KeScaler":
			curMaterial.EmitIntensity, err = parseFloat(lineTokens)
		case "map_Kd", "map_Ks", "map_Kr", "map_Pr", "map_amount":
			if len(lineTokens) < 2 {
				return nil, emitError(res.Path(), lineNum, `unsupported syntax for "%s"; expected 1 argument; got 0`, lineTokens[0])
			}

			var target *string
			switch lineTokens[0] {
			case "map_Kd":
				target = &curMaterial.Diffuse.Texture
			case "map_Ks":
				target = &curMaterial.Specular.Texture
			case "map_Kr":
				target = &curMaterial.Reflectivity.Texture
			case "map_Pr":
				target = &curMaterial.Roughness.Texture
			case "map_amount":
				target = &curMaterial.Amount.Texture
			}

			*target, err = parseTexturePath(lineTokens)
		case "mix":
			if len(lineTokens) != 3 {
				return nil, emitError(res.Path(), lineNum, `unsupported syntax for "mix"; expected 2 arguments; got %d`, len(lineTokens)-1)
			}
			curMaterial.MixFirst = lineTokens[1]
			curMaterial.MixSecond = lineTokens[2]
		default:
			logger.Debugf(`[%s: %d] skipping unsupported statement "%s"`, res.Path(), lineNum, lineTokens[0])
		}

		// Report any errors
		if err != nil {
			return nil, emitError(res.Path(), lineNum, "%s", err)
		}
	}

	if err = scanner.Err(); err != nil {
		return nil, err
	}

	for _, name := range lib.Names() {
		d, _ := lib.Lookup(name)
		if !explicit[name] && (d.Specular.IsTextured() || d.Specular.Color != DefaultSpecular) {
			d.Kind = KindPlastic
			d.RawKind = KindPlastic.String()
		}
	}

	return lib, nil
}

// Generate an error message that includes the library file and line.
func emitError(file string, line int, msgFormat string, args ...interface{}) error {
	return fmt.Errorf("[%s: %d] error: %s", file, line, fmt.Sprintf(msgFormat, args...))
}

// Max argument count of the texture map options. Options are skipped; their
// values are not used.
var textureOptionArgs = map[string]int{
	"-blendu":  1,
	"-blendv":  1,
	"-bm":      1,
	"-boost":   1,
	"-cc":      1,
	"-clamp":   1,
	"-imfchan": 1,
	"-texres":  1,
	"-mm":      2,
	"-o":       3,
	"-s":       3,
	"-t":       3,
}

// Parse the path of a map_ statement. Leading options are skipped and the
// remaining tokens form the path, which may contain spaces.
func parseTexturePath(lineTokens []string) (string, error) {
	tokIdx := 1
	for tokIdx < len(lineTokens) {
		maxArgs, isOption := textureOptionArgs[lineTokens[tokIdx]]
		if !isOption {
			break
		}
		tokIdx++

		// The first value is mandatory; optional ones must be numbers
		for argIdx := 0; argIdx < maxArgs && tokIdx < len(lineTokens); argIdx++ {
			if argIdx > 0 {
				if _, err := strconv.ParseFloat(lineTokens[tokIdx], 64); err != nil {
					break
				}
			}
			tokIdx++
		}
	}

	if tokIdx >= len(lineTokens) {
		return "", fmt.Errorf(`unsupported syntax for "%s"; missing texture path`, lineTokens[0])
	}
	return strings.Join(lineTokens[tokIdx:], " "), nil
}

// Parse a float scalar value.
func parseFloat(lineTokens []string) (float64, error) {
	if len(lineTokens) < 2 {
		return 0, fmt.Errorf(`unsupported syntax for "%s"; expected 1 argument; got %d`, lineTokens[0], len(lineTokens)-1)
	}

	return strconv.ParseFloat(lineTokens[1], 64)
}

// Parse a Vec3 row.
func parseVec3(lineTokens []string) (types.Vec3, error) {
	if len(lineTokens) < 4 {
		return types.Vec3{}, fmt.Errorf(`unsupported syntax for "%s"; expected 3 arguments; got %d`, lineTokens[0], len(lineTokens)-1)
	}

	v := types.Vec3{}
	for tokIdx := 1; tokIdx <= 3; tokIdx++ {
		coord, err := strconv.ParseFloat(lineTokens[tokIdx], 64)
		if err != nil {
			return v, err
		}
		v[tokIdx-1] = coord
	}
	return v, nil
}
