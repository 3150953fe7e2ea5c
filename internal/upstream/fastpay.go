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

// FastPay：表单风格回调（参数在 query/form），应答要求纯文本 success
type FastPay struct {
	client *Client
}

func NewFastPay(client *Client) *FastPay { return &FastPay{client: client} }

func (a *FastPay) Code() string { return "fastpay" }

type fastPayResp struct {
	Status  string `json:"status"` // "0000" 受理成功
	Msg     string `json:"msg"`
	PayLink string `json:"pay_link"`
	Serial  string `json:"serial_no"`
}

func (a *FastPay) InitiatePayment(ctx context.Context, req dto.PaymentRequest, sup *mainmodel.Supplier, ch *mainmodel.Channel) (dto.PaymentResult, error) {
	var result dto.PaymentResult

	payload := map[string]string{
		"merchant":   sup.Account,
		"out_no":     strconv.FormatUint(req.OrderNo, 10),
		"money":      utils.FormatMinor(req.Amount),
		"notify":     req.NotifyURL,
		"client_ip":  req.ClientIP,
		"product":    req.ProductCode,
	}
	payload["sign"] = utils.GenerateSign(payload, sup.ApiKey)

	raw, err := a.client.PostJSON(ctx, sup.Name, sup.ApiURL, payload)
	if err != nil {
		return result, err
	}

	var resp fastPayResp
	if err := json.Unmarshal(raw, &resp); err != nil {
		return result, constant.NewErrorf(constant.CodeUpstreamDataFormatError, "fastpay resp: %v", err)
	}
	if resp.Status != "0000" || resp.PayLink == "" {
		return result, constant.NewErrorf(constant.CodeUpstreamRejected, "fastpay status=%s msg=%s", resp.Status, resp.Msg)
	}

	result.PayURL = resp.PayLink
	result.UpTxnID = resp.Serial
	result.Raw = string(raw)
	return result, nil
}

func (a *FastPay) ParseCallback(body []byte, query url.Values) (dto.CallbackResult, error) {
	var result dto.CallbackResult

	// POST form 与 GET query 同一套参数
	params := query
	if len(body) > 0 {
		if parsed, err := url.ParseQuery(string(body)); err == nil && len(parsed) > 0 {
			params = parsed
		}
	}
	if params == nil {
		return result, constant.NewError(constant.CodeUpstreamDataFormatError)
	}

	orderNo, err := strconv.ParseUint(params.Get("out_no"), 10, 64)
	if err != nil {
		return result, constant.NewErrorf(constant.CodeUpstreamDataFormatError, "fastpay callback out_no %q", params.Get("out_no"))
	}
	amount, err := utils.ParseAmount(params.Get("money"))
	if err != nil {
		return result, constant.NewErrorf(constant.CodeUpstreamDataFormatError, "fastpay callback money %q", params.Get("money"))
	}

	result.OrderNo = orderNo
	result.UpTxnID = params.Get("serial_no")
	result.Amount = amount
	result.Paid = params.Get("state") == "1"
	result.Raw = params.Encode()
	return result, nil
}

func (a *FastPay) SuccessAck() dto.Ack {
	return dto.Ack{ContentType: "text/plain", Body: "success"}
}
