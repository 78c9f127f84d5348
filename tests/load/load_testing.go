package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

const (
	targetHost = "http://localhost:8080"
	rps        = 5
	duration   = 3 * time.Minute
)

type trackRequest struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

type collectionRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type trackedRepository struct {
	RepositoryID int64 `json:"repository_id"`
}

type createdCollection struct {
	CollectionID int64 `json:"collection_id"`
}

var (
	repositories []int64
	collections  []int64
	httpc        = &http.Client{Timeout: 10 * time.Second}
)

func postJSON(url string, body any, out any) (int, error) {
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := httpc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 {
		data, _ := io.ReadAll(resp.Body)
		_ = json.Unmarshal(data, out)
	}
	return resp.StatusCode, nil
}

// Seed
func seedData() error {
	log.Println("Seeding: tracking repositories...")

	for r := 1; r <= 30; r++ {
		var created trackedRepository
		status, err := postJSON(targetHost+"/repositories", trackRequest{
			Owner: fmt.Sprintf("loadowner-%02d", r),
			Name:  fmt.Sprintf("loadrepo-%02d", r),
		}, &created)
		if err != nil {
			return err
		}
		if status >= 400 {
			log.Printf("WARN repositories returned %d\n", status)
			continue
		}

		repositories = append(repositories, created.RepositoryID)
		time.Sleep(20 * time.Millisecond)
	}

	log.Println("Seeding: creating collections...")

	for c := 1; c <= 5; c++ {
		var created createdCollection
		status, err := postJSON(targetHost+"/collections", collectionRequest{
			Name: fmt.Sprintf("loadcollection-%02d", c),
		}, &created)
		if err != nil {
			return err
		}
		if status >= 400 {
			log.Printf("WARN collections returned %d\n", status)
			continue
		}

		collections = append(collections, created.CollectionID)
		time.Sleep(20 * time.Millisecond)
	}

	log.Println("Seeding: filling collections...")

	for i, repoID := range repositories {
		if len(collections) == 0 {
			break
		}
		collectionID := collections[i%len(collections)]
		body := trackRequest{
			Owner: fmt.Sprintf("loadowner-%02d", i+1),
			Name:  fmt.Sprintf("loadrepo-%02d", i+1),
		}
		status, err := postJSON(fmt.Sprintf("%s/collections/%d/repositories", targetHost, collectionID), body, nil)
		if err != nil {
			return err
		}
		if status >= 400 {
			log.Printf("WARN collections/%d/repositories returned %d for repo %d\n", collectionID, status, repoID)
		}
		time.Sleep(15 * time.Millisecond)
	}

	log.Printf("Seed completed: repositories=%d collections=%d\n", len(repositories), len(collections))
	return nil
}

// Targeter
func makeTargeter() vegeta.Targeter {
	return func(t *vegeta.Target) error {
		r := rand.Float64()

		// 45% GET growth по репозиторию
		if r < 0.45 {
			repoID := repositories[rand.Intn(len(repositories))]
			t.Method = http.MethodGet
			t.URL = fmt.Sprintf("%s/repositories/%d/growth", targetHost, repoID)
			t.Body = nil
			t.Header = map[string][]string{"Accept": {"application/json"}}
			return nil
		}

		// 25% GET growth по коллекции
		if r < 0.70 {
			collectionID := collections[rand.Intn(len(collections))]
			t.Method = http.MethodGet
			t.URL = fmt.Sprintf("%s/collections/%d/growth", targetHost, collectionID)
			t.Body = nil
			t.Header = map[string][]string{"Accept": {"application/json"}}
			return nil
		}

		// 15% GET списка репозиториев
		if r < 0.85 {
			t.Method = http.MethodGet
			t.URL = targetHost + "/repositories"
			t.Body = nil
			t.Header = map[string][]string{"Accept": {"application/json"}}
			return nil
		}

		// 10% GET коллекции с участниками
		if r < 0.95 {
			collectionID := collections[rand.Intn(len(collections))]
			t.Method = http.MethodGet
			t.URL = fmt.Sprintf("%s/collections/%d", targetHost, collectionID)
			t.Body = nil
			t.Header = map[string][]string{"Accept": {"application/json"}}
			return nil
		}

		// 3% POST регистрации нового репозитория
		if r < 0.98 {
			body, _ := json.Marshal(trackRequest{
				Owner: fmt.Sprintf("loadowner-%d", time.Now().UnixNano()),
				Name:  "loadrepo",
			})
			t.Method = http.MethodPost
			t.URL = targetHost + "/repositories"
			t.Body = body
			t.Header = map[string][]string{"Content-Type": {"application/json"}}
			return nil
		}

		// 2% POST запроса синхронизации
		repoID := repositories[rand.Intn(len(repositories))]
		t.Method = http.MethodPost
		t.URL = fmt.Sprintf("%s/repositories/%d/sync", targetHost, repoID)
		t.Body = nil
		t.Header = map[string][]string{"Content-Type": {"application/json"}}
		return nil
	}
}

// Attack
func runAttack() {
	rate := vegeta.Rate{Freq: rps, Per: time.Second}
	attacker := vegeta.NewAttacker()
	targeter := makeTargeter()

	var metrics vegeta.Metrics

	log.Printf("Starting attack: %s for %s", targetHost, duration)
	for res := range attacker.Attack(targeter, rate, duration, "load-test") {
		metrics.Add(res)
	}
	metrics.Close()

	fmt.Println("=== Results ===")
	fmt.Printf("Requests: %d\n", metrics.Requests)
	fmt.Printf("Success rate: %.4f%%\n", metrics.Success*100)
	fmt.Printf("Latency mean: %s\n", metrics.Latencies.Mean)
	fmt.Printf("Latency P95: %s\n", metrics.Latencies.P95)
	fmt.Printf("Latency P99: %s\n", metrics.Latencies.P99)
}

func main() {
	rand.Seed(time.Now().UnixNano())

	if err := seedData(); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}

	runAttack()
}
