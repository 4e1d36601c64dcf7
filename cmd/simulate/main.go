// Simulates the concurrent-decision race: one pending appointment, with
// the teacher approving and the student cancelling at the same moment.
// Exactly one call should win; the rest see conflict or invalid_transition.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/campusbook/teacher-booking/internal/booking"
	"github.com/campusbook/teacher-booking/internal/identity"
)

type outcome struct {
	status int
	code   string
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	baseURL := getenv("API_URL", "http://localhost:8080")
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	rounds := 20

	client := &http.Client{Timeout: 10 * time.Second}

	teacher := identity.Identity{ID: uuid.New(), Name: "Sim Teacher", Role: booking.RoleTeacher, Approved: true}
	student := identity.Identity{ID: uuid.New(), Name: "Sim Student", Role: booking.RoleStudent, Approved: true}

	teacherTok := mustSign(secret, teacher)
	studentTok := mustSign(secret, student)

	var approved, cancelled, conflicts, invalid, zeroWinner int

	for i := 0; i < rounds; i++ {
		apptID := propose(client, baseURL, studentTok, teacher)

		var wg sync.WaitGroup
		results := make([]outcome, 2)

		wg.Add(2)
		go func() {
			defer wg.Done()
			results[0] = changeStatus(client, baseURL, teacherTok, apptID, "approved")
		}()
		go func() {
			defer wg.Done()
			results[1] = changeStatus(client, baseURL, studentTok, apptID, "cancelled")
		}()
		wg.Wait()

		winners := 0
		for j, res := range results {
			switch {
			case res.status == http.StatusOK && j == 0:
				approved++
				winners++
			case res.status == http.StatusOK && j == 1:
				// Note: approve-then-cancel is a legal sequence, so the
				// cancel can win outright or succeed after the approve.
				cancelled++
				winners++
			case res.code == "conflict":
				conflicts++
			case res.code == "invalid_transition":
				invalid++
			default:
				log.Printf("unexpected outcome: status=%d code=%s", res.status, res.code)
			}
		}
		if winners == 0 {
			zeroWinner++
		}
	}

	fmt.Printf("rounds=%d approved=%d cancelled=%d conflict=%d invalid_transition=%d\n",
		rounds, approved, cancelled, conflicts, invalid)

	if zeroWinner > 0 {
		log.Fatalf("%d rounds produced no winner at all", zeroWinner)
	}
	log.Println("simulation passed: every round had a winner")
}

func propose(client *http.Client, baseURL, token string, teacher identity.Identity) string {
	body, _ := json.Marshal(map[string]any{
		"owner_id":     teacher.ID.String(),
		"owner_name":   teacher.Name,
		"title":        "Simulated meeting",
		"description":  "Concurrency exercise",
		"scheduled_at": time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	})

	resp := do(client, http.MethodPost, baseURL+"/appointments", token, body)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		data, _ := io.ReadAll(resp.Body)
		log.Fatalf("propose failed: status=%d body=%s", resp.StatusCode, data)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		log.Fatalf("decode propose response: %v", err)
	}
	return created.ID
}

func changeStatus(client *http.Client, baseURL, token, apptID, status string) outcome {
	body, _ := json.Marshal(map[string]string{"status": status})

	resp := do(client, http.MethodPost, baseURL+"/appointments/"+apptID+"/status", token, body)
	defer resp.Body.Close()

	var errResp struct {
		Error string `json:"error"`
	}
	data, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(data, &errResp)

	return outcome{status: resp.StatusCode, code: errResp.Error}
}

func do(client *http.Client, method, url, token string, body []byte) *http.Response {
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		log.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

func mustSign(secret string, id identity.Identity) string {
	tok, err := identity.SignJWT(secret, id, time.Hour)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}
	return tok
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
