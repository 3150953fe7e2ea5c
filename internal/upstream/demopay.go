package upstream

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"fpa-order-api/internal/constant"
	"fpa-order-api/internal/dto"
	mainmodel "fpa-order-api/internal/model/main"
	"fpa-order-api/internal/utils"
)

// DemoPay：JSON 报文对接，回调应答要求 {"code":200,"message":"success"}
type DemoPay struct {
	client *Client
}

func NewDemoPay(client *Client) *DemoPay { return &DemoPay{client: client} }

func (a *DemoPay) Code() string { return "demopay" }

type demoPayReq struct {
	MchNo     string `json:"mch_no"`
	OrderNo   string `json:"order_no"`
	Amount    string `json:"amount"`
	ProductID string `json:"product_id"`
	NotifyURL string `json:"notify_url"`
	ReturnURL string `json:"return_url"`
	ClientIP  string `json:"client_ip"`
	Sign      string `json:"sign"`
}

type demoPayResp struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		PayURL string `json:"pay_url"`
		TxnID  string `json:"txn_id"`
	} `json:"data"`
}

func (a *DemoPay) InitiatePayment(ctx context.Context, req dto.PaymentRequest, sup *mainmodel.Supplier, ch *mainmodel.Channel) (dto.PaymentResult, error) {
	var result dto.PaymentResult

	body := demoPayReq{
		MchNo:     sup.Account,
		OrderNo:   strconv.FormatUint(req.OrderNo, 10),
		Amount:    utils.FormatMinor(req.Amount),
		ProductID: req.ProductCode,
		NotifyURL: req.NotifyURL,
		ReturnURL: req.ReturnURL,
		ClientIP:  req.ClientIP,
	}
	body.Sign = utils.GenerateSign(map[string]string{
		"mch_no":     body.MchNo,
		"order_no":   body.OrderNo,
		"amount":     body.Amount,
		"product_id": body.ProductID,
		"notify_url": body.NotifyURL,
	}, sup.ApiKey)

	raw, err := a.client.PostJSON(ctx, sup.Name, sup.ApiURL, body)
	if err != nil {
		return result, err
	}

	var resp demoPayResp
	if err := json.Unmarshal(raw, &resp); err != nil {
		return result, constant.NewErrorf(constant.CodeUpstreamDataFormatError, "demopay resp: %v", err)
	}
	if resp.Code != 200 || resp.Data.PayURL == "" {
		return result, constant.NewErrorf(constant.CodeUpstreamRejected, "demopay code=%d msg=%s", resp.Code, resp.Message)
	}

	result.PayURL = resp.Data.PayURL
	result.UpTxnID = resp.Data.TxnID
	result.Raw = string(raw)
	return result, nil
}

type demoPayCallback struct {
	OrderNo string `json:"order_no"`
	TxnID   string `json:"txn_id"`
	Amount  string `json:"amount"`
	Status  string `json:"status"` // SUCCESS / FAIL
}

func (a *DemoPay) ParseCallback(body []byte, _ url.Values) (dto.CallbackResult, error) {
	var result dto.CallbackResult

	var cb demoPayCallback
	if err := json.Unmarshal(body, &cb); err != nil {
		return result, constant.NewErrorf(constant.CodeUpstreamDataFormatError, "demopay callback: %v", err)
	}
	orderNo, err := strconv.ParseUint(cb.OrderNo, 10, 64)
	if err != nil {
		return result, constant.NewErrorf(constant.CodeUpstreamDataFormatError, "demopay callback order_no %q", cb.OrderNo)
	}
	amount, err := utils.ParseAmount(cb.Amount)
	if err != nil {
		return result, constant.NewErrorf(constant.CodeUpstreamDataFormatError, "demopay callback amount %q", cb.Amount)
	}

	result.OrderNo = orderNo
	result.UpTxnID = cb.TxnID
	result.Amount = amount
	result.Paid = cb.Status == "SUCCESS"
	result.Raw = string(body)
	return result, nil
}

func (a *DemoPay) SuccessAck() dto.Ack {
	return dto.Ack{ContentType: "application/json", Body: `{"code":200,"message":"success"}`}
}
