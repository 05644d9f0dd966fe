package mapi

import (
	"encoding/json"
	"fmt"
)

type MapPlayer struct {
	World   string  `json:"world"`
	Armor   uint8   `json:"armor"`
	Name    string  `json:"name"`
	X       float64 `json:"x"`
	Y       float32 `json:"y"`
	Health  uint8   `json:"health"`
	Z       float64 `json:"z"`
	Sort    uint8   `json:"sort"`
	Type    string  `json:"type"`
	Account string  `json:"account"`
}

type PlayersResponse struct {
	CurrentCount uint16      `json:"currentcount"`
	HasStorm     bool        `json:"hasStorm"`
	Players      []MapPlayer `json:"players"`
}

func DecodePlayers(data []byte) (PlayersResponse, error) {
	var res PlayersResponse
	if err := json.Unmarshal(data, &res); err != nil {
		return res, fmt.Errorf("failed to decode player feed: %w", err)
	}

	return res, nil
}
