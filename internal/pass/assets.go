package pass

import (
	"fmt"
	"io/fs"
)

// Assets maps bundle file names (icon.png, logo@2x.png, ...) to content.
type Assets map[string][]byte

var densities = []string{"", "@2x", "@3x"}

// assetSources lists which source image backs each bundle image.
var assetSources = map[string]string{
	"icon":  "photo",
	"logo":  "photo",
	"strip": "strip",
}

// LoadAssets reads photo{,@2x,@3x}.png and strip{,@2x,@3x}.png from fsys
// and lays them out as icon, logo and strip images.
func LoadAssets(fsys fs.FS) (Assets, error) {
	assets := make(Assets, len(assetSources)*len(densities))
	for target, source := range assetSources {
		for _, density := range densities {
			data, err := fs.ReadFile(fsys, source+density+".png")
			if err != nil {
				return nil, fmt.Errorf("pass asset %s%s: %w", target, density, err)
			}
			assets[target+density+".png"] = data
		}
	}
	return assets, nil
}
