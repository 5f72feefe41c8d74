package api_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"billdiff/internal/config"
	"billdiff/internal/server"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return server.NewServer(config.DefaultConfig()).Router()
}

// billWorkbookBytes 生成标准三列账单工作簿
func billWorkbookBytes(t *testing.T, rows [][]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	all := append([][]string{{"设备号码", "账务周期", "账单费用"}}, rows...)
	for r, row := range all {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write buffer: %v", err)
	}
	return buf.Bytes()
}

func uploadFile(t *testing.T, router *gin.Engine, fileName string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return out
}

func TestUploadCompareExportFlow(t *testing.T) {
	router := newTestRouter(t)

	content := billWorkbookBytes(t, [][]string{
		{"D1", "[20240601]2024-06-01:2024-06-30", "100"},
		{"D1", "[20240701]2024-07-01:2024-07-31", "150"},
		{"D2", "[20240701]2024-07-01:2024-07-31", "80"},
	})

	// 上传
	w := uploadFile(t, router, "bill.xlsx", content)
	if w.Code != http.StatusOK {
		t.Fatalf("upload status=%d body=%s", w.Code, w.Body.String())
	}
	uploaded := decodeBody(t, w)
	datasetID, _ := uploaded["datasetId"].(string)
	if datasetID == "" {
		t.Fatalf("missing datasetId: %v", uploaded)
	}
	if uploaded["rowCount"].(float64) != 3 {
		t.Fatalf("rowCount want=3 got=%v", uploaded["rowCount"])
	}

	// 可用月份
	req := httptest.NewRequest(http.MethodGet, "/api/datasets/"+datasetID+"/months", nil)
	mw := httptest.NewRecorder()
	router.ServeHTTP(mw, req)
	if mw.Code != http.StatusOK {
		t.Fatalf("months status=%d body=%s", mw.Code, mw.Body.String())
	}
	monthsBody := decodeBody(t, mw)
	months := monthsBody["months"].([]any)
	if len(months) != 2 || months[0] != "2024-06" || months[1] != "2024-07" {
		t.Fatalf("unexpected months: %v", months)
	}

	// 对比
	cw := postJSON(t, router, "/api/compare", map[string]string{
		"datasetId": datasetID, "monthA": "2024-06", "monthB": "2024-07",
	})
	if cw.Code != http.StatusOK {
		t.Fatalf("compare status=%d body=%s", cw.Code, cw.Body.String())
	}
	compared := decodeBody(t, cw)
	rows := compared["rows"].([]any)
	if len(rows) != 2 {
		t.Fatalf("rows want=2 got=%v", rows)
	}
	first := rows[0].(map[string]any)
	if first["deviceId"] != "D1" || first["diff"].(float64) != 50 || first["diffPercent"].(float64) != 50 {
		t.Fatalf("unexpected first row: %v", first)
	}
	second := rows[1].(map[string]any)
	if second["deviceId"] != "D2" || second["diffPercent"] != "inf" {
		t.Fatalf("unexpected second row: %v", second)
	}
	summary := compared["summary"].(map[string]any)
	if summary["totalDiff"].(float64) != 130 {
		t.Fatalf("totalDiff want=130 got=%v", summary["totalDiff"])
	}
	maxRow := summary["maxDiffRow"].(map[string]any)
	if maxRow["deviceId"] != "D2" {
		t.Fatalf("maxDiffRow want=D2 got=%v", maxRow)
	}

	// 导出 + 一次性下载
	ew := postJSON(t, router, "/api/export", map[string]string{
		"datasetId": datasetID, "monthA": "2024-06", "monthB": "2024-07", "format": "csv",
	})
	if ew.Code != http.StatusOK {
		t.Fatalf("export status=%d body=%s", ew.Code, ew.Body.String())
	}
	exported := decodeBody(t, ew)
	downloadURL, _ := exported["downloadUrl"].(string)
	if downloadURL == "" {
		t.Fatalf("missing downloadUrl: %v", exported)
	}

	dw := httptest.NewRecorder()
	router.ServeHTTP(dw, httptest.NewRequest(http.MethodGet, downloadURL, nil))
	if dw.Code != http.StatusOK {
		t.Fatalf("download status=%d body=%s", dw.Code, dw.Body.String())
	}
	if !bytes.HasPrefix(dw.Body.Bytes(), []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatalf("csv download must start with BOM")
	}

	// 链接一次性使用
	dw2 := httptest.NewRecorder()
	router.ServeHTTP(dw2, httptest.NewRequest(http.MethodGet, downloadURL, nil))
	if dw2.Code != http.StatusNotFound {
		t.Fatalf("second download status=%d, want 404", dw2.Code)
	}
}

func TestCompare_SameMonthHasNoSummary(t *testing.T) {
	router := newTestRouter(t)

	content := billWorkbookBytes(t, [][]string{
		{"D1", "[20240601]2024-06-01:2024-06-30", "100"},
	})
	w := uploadFile(t, router, "bill.xlsx", content)
	if w.Code != http.StatusOK {
		t.Fatalf("upload status=%d body=%s", w.Code, w.Body.String())
	}
	datasetID := decodeBody(t, w)["datasetId"].(string)

	cw := postJSON(t, router, "/api/compare", map[string]string{
		"datasetId": datasetID, "monthA": "2024-06", "monthB": "2024-06",
	})
	if cw.Code != http.StatusOK {
		t.Fatalf("compare status=%d body=%s", cw.Code, cw.Body.String())
	}
	compared := decodeBody(t, cw)
	if len(compared["rows"].([]any)) != 0 {
		t.Fatalf("rows want empty got %v", compared["rows"])
	}
	if compared["summary"] != nil {
		t.Fatalf("summary want null got %v", compared["summary"])
	}
	if compared["message"] == "" {
		t.Fatalf("expected explanatory message")
	}
}

func TestUpload_Errors(t *testing.T) {
	router := newTestRouter(t)

	// 不支持的扩展名
	w := uploadFile(t, router, "bill.txt", []byte("hello"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("txt upload status=%d, want 400", w.Code)
	}

	// 缺少必需列
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	f.SetCellValue(sheet, "A1", "号码")
	f.SetCellValue(sheet, "B1", "费用")
	f.SetCellValue(sheet, "A2", "D1")
	f.SetCellValue(sheet, "B2", "1")
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write buffer: %v", err)
	}
	f.Close()

	w = uploadFile(t, router, "bill.xlsx", buf.Bytes())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("schema upload status=%d body=%s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["error"] == nil {
		t.Fatalf("expected error message")
	}
}

func TestCompare_Errors(t *testing.T) {
	router := newTestRouter(t)

	// 数据集不存在
	w := postJSON(t, router, "/api/compare", map[string]string{
		"datasetId": "nope", "monthA": "2024-06", "monthB": "2024-07",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown dataset status=%d, want 404", w.Code)
	}

	// 月份无数据
	content := billWorkbookBytes(t, [][]string{
		{"D1", "[20240601]2024-06-01:2024-06-30", "100"},
	})
	uw := uploadFile(t, router, "bill.xlsx", content)
	datasetID := decodeBody(t, uw)["datasetId"].(string)

	w = postJSON(t, router, "/api/compare", map[string]string{
		"datasetId": datasetID, "monthA": "2024-06", "monthB": "2099-01",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing month status=%d, want 400", w.Code)
	}

	// 缺少月份参数
	w = postJSON(t, router, "/api/compare", map[string]string{
		"datasetId": datasetID,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty months status=%d, want 400", w.Code)
	}
}

func TestStatus(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["initialized"] != false {
		t.Fatalf("initialized want=false got=%v", body["initialized"])
	}
	if body["datasetCount"].(float64) != 0 {
		t.Fatalf("datasetCount want=0 got=%v", body["datasetCount"])
	}
}
