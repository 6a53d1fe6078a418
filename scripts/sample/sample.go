package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/mahesh00009/CurToCryptoFrontend/pkg/utils"
)

// Seeds the conversion journal of a running server with a few one-shot
// conversions. Override the target with SAMPLE_API.
const defaultBaseURL = "http://localhost:8080/api"

var baseURL string

type ConvertRequest struct {
	Symbol  string `json:"symbol"`
	Amount  string `json:"amount"`
	Convert string `json:"convert"`
}

type ConvertResponse struct {
	Symbol          string `json:"symbol"`
	Amount          string `json:"amount"`
	Convert         string `json:"convert"`
	ConvertedAmount string `json:"convertedAmount"`
}

type Stats struct {
	Total    int64            `json:"total"`
	Failed   int64            `json:"failed"`
	BySource map[string]int64 `json:"by_source"`
}

func main() {
	baseURL = utils.GetEnv("SAMPLE_API", defaultBaseURL)

	samples := []ConvertRequest{
		{Symbol: "BTC", Amount: "1", Convert: "USD"},
		{Symbol: "BTC", Amount: "0.25", Convert: "EUR"},
		{Symbol: "ETH", Amount: "3", Convert: "USD"},
		{Symbol: "ETH", Amount: "10", Convert: "NPR"},
		{Symbol: "SOL", Amount: "42", Convert: "GBP"},
	}

	for _, s := range samples {
		res, ok := convert(s)
		if !ok {
			fmt.Printf("%s %s -> %s failed\n", s.Amount, s.Symbol, s.Convert)
			continue
		}
		fmt.Printf("%s %s = %s %s\n", res.Amount, res.Symbol, res.ConvertedAmount, res.Convert)
	}

	stats := fetchStats()
	fmt.Printf("\nJournal: %d conversions, %d failed\n", stats.Total, stats.Failed)
	fmt.Println("Sample data created successfully!")
}

// convert reports false when the remote service rejected the conversion;
// those are still journaled by the server.
func convert(req ConvertRequest) (ConvertResponse, bool) {
	body, _ := json.Marshal(req)

	resp, err := http.Post(baseURL+"/convert", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("Failed to convert %s %s: %v", req.Amount, req.Symbol, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadGateway:
		return ConvertResponse{}, false
	default:
		log.Fatalf("Failed to convert %s %s: status %d", req.Amount, req.Symbol, resp.StatusCode)
	}

	var res ConvertResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		log.Fatalf("Failed to decode conversion response: %v", err)
	}
	return res, true
}

func fetchStats() Stats {
	resp, err := http.Get(baseURL + "/conversions/stats")
	if err != nil {
		log.Fatalf("Failed to fetch stats: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Fatalf("Failed to fetch stats: status %d", resp.StatusCode)
	}

	var stats Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		log.Fatalf("Failed to decode stats response: %v", err)
	}
	return stats
}
