package gateway

import (
	"net/url"
	"strconv"

	"vaultguard-client/internal/models"
)

// Typed wrappers for the API surface the views use. Paths and payload
// shapes follow the server's v1 contract.

func (c *Client) CreateUser(req models.CreateUserRequest) (models.CreateUserResponse, error) {
	var resp models.CreateUserResponse
	err := c.do("POST", "/v1/create_user", nil, req, &resp)
	return resp, err
}

func (c *Client) LoginUser(req models.LoginUserRequest) (models.LoginUserResponse, error) {
	var resp models.LoginUserResponse
	err := c.do("POST", "/v1/login_user", nil, req, &resp)
	return resp, err
}

func (c *Client) VerifyEmail(req models.VerifyEmailRequest) (models.VerifyEmailResponse, error) {
	var resp models.VerifyEmailResponse
	err := c.do("POST", "/v1/verify_email", nil, req, &resp)
	return resp, err
}

func (c *Client) CreateAccount(currency string) (models.Account, error) {
	var account models.Account
	err := c.do("POST", "/v1/accounts", nil, models.CreateAccountRequest{Currency: currency}, &account)
	return account, err
}

// ListAccounts fetches one page of the authenticated user's accounts.
func (c *Client) ListAccounts(pageID, pageSize int) ([]models.Account, error) {
	query := url.Values{}
	query.Set("page_id", strconv.Itoa(pageID))
	query.Set("page_size", strconv.Itoa(pageSize))

	var resp models.ListAccountsResponse
	if err := c.do("GET", "/v1/accounts", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Accounts, nil
}

func (c *Client) CreateTransfer(req models.CreateTransferRequest) (models.TransferRecord, error) {
	var resp models.CreateTransferResponse
	if err := c.do("POST", "/v1/transfers", nil, req, &resp); err != nil {
		return models.TransferRecord{}, err
	}
	return resp.Transfer, nil
}

// ListTransfers fetches one page of history for the given account.
func (c *Client) ListTransfers(accountID int64, pageID, pageSize int) ([]models.TransferRecord, error) {
	query := url.Values{}
	query.Set("account_id", strconv.FormatInt(accountID, 10))
	query.Set("page_id", strconv.Itoa(pageID))
	query.Set("page_size", strconv.Itoa(pageSize))

	var resp models.ListTransfersResponse
	if err := c.do("GET", "/v1/transfers", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Transfers, nil
}
