package weather

import (
	"fmt"
	"strconv"
)

// ImageCategory names the background image shown behind a conditions page.
type ImageCategory string

const (
	CategoryClear        ImageCategory = "clear"
	CategoryCloudy       ImageCategory = "cloudy"
	CategoryRainy        ImageCategory = "rainy"
	CategoryThunderstorm ImageCategory = "thunderstorm"
	CategorySnowy        ImageCategory = "snowy"
	CategoryMisty        ImageCategory = "misty"
)

// CategorizeIcon maps an OpenWeatherMap icon code (e.g. "04d") to an image
// category by the numeric value of its first two characters. Codes 9 and 10
// are both rain; 12 and anything above 13 fall through to mist, matching the
// provider's icon table where 50x is the only remaining group.
func CategorizeIcon(icon string) (ImageCategory, error) {
	if len(icon) < 2 {
		return "", fmt.Errorf("icon code %q too short", icon)
	}
	code, err := strconv.Atoi(icon[:2])
	if err != nil {
		return "", fmt.Errorf("icon code %q has no numeric prefix: %w", icon, err)
	}

	switch {
	case code == 1:
		return CategoryClear, nil
	case code > 1 && code < 9:
		return CategoryCloudy, nil
	case code > 8 && code < 11:
		return CategoryRainy, nil
	case code == 11:
		return CategoryThunderstorm, nil
	case code == 13:
		return CategorySnowy, nil
	default:
		return CategoryMisty, nil
	}
}
