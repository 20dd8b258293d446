package model

import (
	"fmt"
	"strings"
)

// FinishKind distinguishes the two finish slots of a design.
type FinishKind string

const (
	FinishDoor FinishKind = "door"
	FinishTop  FinishKind = "top"
)

// Default finish tokens used when a caller does not pick one.
const (
	DefaultDoorToken = "DFKW"
	DefaultTopToken  = "CDZM"
)

// MaterialOption is an immutable finish catalog entry.
type MaterialOption struct {
	Token      string      `json:"token"`
	Label      string      `json:"label"`
	ManifestID string      `json:"manifestId"`
	Hex        string      `json:"hex"`
	Img        string      `json:"img"`
	JPG        string      `json:"jpg"`
	Multiplier float64     `json:"multiplier"`
	RepeatUV   *[2]float64 `json:"repeatUV,omitempty"` // tops only
}

type materialCatalog struct {
	kind    FinishKind
	list    []MaterialOption
	byToken map[string]MaterialOption
}

func newMaterialCatalog(kind FinishKind, list []MaterialOption) materialCatalog {
	byToken := make(map[string]MaterialOption, len(list))
	for _, m := range list {
		byToken[m.Token] = m
	}
	return materialCatalog{kind: kind, list: list, byToken: byToken}
}

func doorOption(token, label, manifestID, hex string, multiplier float64) MaterialOption {
	return MaterialOption{
		Token:      token,
		Label:      label,
		ManifestID: manifestID,
		Hex:        hex,
		Img:        fmt.Sprintf("/materials/doors/%s.webp", manifestID),
		JPG:        fmt.Sprintf("/materials/doors/%s.jpg", manifestID),
		Multiplier: multiplier,
	}
}

func topOption(token, label, manifestID, hex string, multiplier float64) MaterialOption {
	return MaterialOption{
		Token:      token,
		Label:      label,
		ManifestID: manifestID,
		Hex:        hex,
		Img:        fmt.Sprintf("/materials/tops/%s.webp", manifestID),
		JPG:        fmt.Sprintf("/materials/tops/%s.jpg", manifestID),
		Multiplier: multiplier,
		RepeatUV:   &[2]float64{0.5, 0.5},
	}
}

var (
	doorCatalog = newMaterialCatalog(FinishDoor, []MaterialOption{
		doorOption("DFIB", "Fenix Ingo Black", "Fenix-Ingo-Black", "#111214", 1.0),
		doorOption("DFKW", "Fenix Kos White", "Fenix-Kos-White", "#F5F4F2", 1.0),
		doorOption("DFLG", "Fenix London Grey", "Fenix-London-Grey", "#7D868E", 1.0),
		doorOption("DFHS", "Fenix Hamilton Steel", "Fenix-Hamilton-Steel", "#8D8F91", 1.2),
	})
	topCatalog = newMaterialCatalog(FinishTop, []MaterialOption{
		topOption("CDSM", "Dekton Sirius Matt", "Dekton-Sirius-Matt", "#1A1A1A", 1.1),
		topOption("CDZM", "Dekton Zenith Matt", "Dekton-Zenith-Matt", "#EEECEA", 1.1),
		topOption("CMSW", "Marble Super White", "Marble-Super-White", "#EDEAE6", 1.4),
		topOption("CMCA", "Marble Calacatta", "Marble-Calacatta", "#F2EFEA", 1.6),
	})
)

func catalogFor(kind FinishKind) materialCatalog {
	if kind == FinishTop {
		return topCatalog
	}
	return doorCatalog
}

func (c materialCatalog) lookup(token string) (MaterialOption, error) {
	m, ok := c.byToken[token]
	if !ok {
		return MaterialOption{}, unknownIdentifier(ErrCodeUnknownFinish, string(c.kind), token)
	}
	return m, nil
}

// cheapest returns the first option, in catalog order, with the lowest multiplier.
func (c materialCatalog) cheapest() MaterialOption {
	best := c.list[0]
	for _, m := range c.list[1:] {
		if m.Multiplier < best.Multiplier {
			best = m
		}
	}
	return best
}

// premium returns the first option, in catalog order, with the highest multiplier.
func (c materialCatalog) premium() MaterialOption {
	best := c.list[0]
	for _, m := range c.list[1:] {
		if m.Multiplier > best.Multiplier {
			best = m
		}
	}
	return best
}

func (c materialCatalog) byManifestID(manifestID string) (MaterialOption, error) {
	for _, m := range c.list {
		if strings.EqualFold(m.ManifestID, manifestID) {
			return m, nil
		}
	}
	return MaterialOption{}, unknownIdentifier(ErrCodeUnknownFinish, string(c.kind)+" manifest", manifestID)
}

// LookupDoor returns the door finish for token.
func LookupDoor(token string) (MaterialOption, error) { return doorCatalog.lookup(token) }

// LookupTop returns the countertop finish for token.
func LookupTop(token string) (MaterialOption, error) { return topCatalog.lookup(token) }

// LookupFinish returns the finish for token in the catalog of kind.
func LookupFinish(kind FinishKind, token string) (MaterialOption, error) {
	return catalogFor(kind).lookup(token)
}

// Materials returns the finish catalog of kind in declaration order.
func Materials(kind FinishKind) []MaterialOption {
	list := catalogFor(kind).list
	out := make([]MaterialOption, len(list))
	copy(out, list)
	return out
}

// MaterialTokens returns the finish tokens of kind in declaration order.
func MaterialTokens(kind FinishKind) []string {
	list := catalogFor(kind).list
	tokens := make([]string, len(list))
	for i, m := range list {
		tokens[i] = m.Token
	}
	return tokens
}

// CheapestFinish returns the lowest-multiplier finish of kind.
// Ties resolve to the earliest entry in catalog order.
func CheapestFinish(kind FinishKind) MaterialOption { return catalogFor(kind).cheapest() }

// PremiumFinish returns the highest-multiplier finish of kind.
// Ties resolve to the earliest entry in catalog order.
func PremiumFinish(kind FinishKind) MaterialOption { return catalogFor(kind).premium() }

// DoorByManifestID maps a texture manifest id to its door finish, ignoring case.
func DoorByManifestID(manifestID string) (MaterialOption, error) {
	return doorCatalog.byManifestID(manifestID)
}

// TopByManifestID maps a texture manifest id to its countertop finish, ignoring case.
func TopByManifestID(manifestID string) (MaterialOption, error) {
	return topCatalog.byManifestID(manifestID)
}
