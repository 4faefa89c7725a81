package plaza

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type NewUser struct {
	Username,
	Password string
}

type RegistrationResponse struct {
	UserID,
	Username string
}

type LoginResponse struct {
	Token    string
	UserID   string
	Username string
}

type StatusResponse struct {
	Username string
	Floors   []string
	Online   int
}

// Register asks the plaza server to create a new user and returns the
// assigned id and official username.
func Register(client *http.Client, username, password string) (*RegistrationResponse, error) {
	res := RegistrationResponse{}
	if err := post(client, "/register", NewUser{Username: username, Password: password}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Login exchanges credentials for a bearer token and the user profile.
func Login(client *http.Client, username, password string) (*LoginResponse, error) {
	res := LoginResponse{}
	if err := post(client, "/login", NewUser{Username: username, Password: password}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Status fetches the authenticated user's view of the server: their
// username, the floors available to browse, and the online count.
func Status(client *http.Client) (*StatusResponse, error) {
	res, err := client.Get("/status")
	if err != nil {
		return nil, fmt.Errorf("request error: %w", err)
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("request failed: %s", string(body))
	}
	status := StatusResponse{}
	if err := json.NewDecoder(res.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("error decoding status: %w", err)
	}
	return &status, nil
}

func post(client *http.Client, path string, reqBody, resBody any) error {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	res, err := client.Post(path, "application/json; charset=utf-8", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("request error: %w", err)
	}
	defer func() {
		_ = res.Body.Close()
	}()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("request failed: %s", string(body))
	}
	return json.NewDecoder(res.Body).Decode(resBody)
}
