package handler

import (
	"MuXiangMall/carts"
	"MuXiangMall/global"
	"MuXiangMall/retcode"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func setupCartRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	global.DB = gdb

	server := NewCartServer(zap.NewNop().Sugar())
	router := gin.New()
	router.GET("/carts", server.List)
	router.POST("/carts", server.Add)
	router.PUT("/carts", server.Update)
	router.DELETE("/carts", server.Delete)
	router.PUT("/carts/selection", server.SelectAll)
	return router, mock
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func respCode(t *testing.T, w *httptest.ResponseRecorder) int {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return int(resp["code"].(float64))
}

func TestCartAddRejectsZeroCount(t *testing.T) {
	router, mock := setupCartRouter(t)

	// 校验在查库之前，数量不合法根本不会碰数据库
	w := doJSON(router, http.MethodPost, "/carts", `{"sku_id":10,"count":0}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCartAddUnknownSku(t *testing.T) {
	router, mock := setupCartRouter(t)

	mock.ExpectQuery("SELECT (.+) FROM `sku`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := doJSON(router, http.MethodPost, "/carts", `{"sku_id":404,"count":1}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, retcode.NoDataErr, respCode(t, w))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCartAddAnonymousWritesCookie(t *testing.T) {
	router, mock := setupCartRouter(t)

	mock.ExpectQuery("SELECT (.+) FROM `sku`").WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "price", "stock"}).
			AddRow(10, "蜜瓜牛奶 500ml", 9.99, 5))

	w := doJSON(router, http.MethodPost, "/carts", `{"sku_id":10,"count":2}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, retcode.OK, respCode(t, w))

	// 匿名加购要把购物车写回cookie
	var raw string
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == carts.CookieName {
			raw = cookie.Value
		}
	}
	require.NotEmpty(t, raw)

	// gin写cookie的时候做了url转义，读回来要先还原
	unescaped, err := url.QueryUnescape(raw)
	require.NoError(t, err)
	data, err := base64.StdEncoding.DecodeString(unescaped)
	require.NoError(t, err)
	snapshot := carts.Snapshot{}
	require.NoError(t, json.Unmarshal(data, &snapshot))
	require.Equal(t, carts.Line{Count: 2, Selected: true}, snapshot[10])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCartSelectAllRequiresSelected(t *testing.T) {
	router, mock := setupCartRouter(t)

	w := doJSON(router, http.MethodPut, "/carts/selection", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCartDeleteAnonymous(t *testing.T) {
	router, mock := setupCartRouter(t)

	// 先构造一个有两件商品的cookie购物车
	data, err := json.Marshal(carts.Snapshot{
		10: {Count: 2, Selected: true},
		20: {Count: 1, Selected: false},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/carts", strings.NewReader(`{"sku_id":10}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{
		Name:  carts.CookieName,
		Value: url.QueryEscape(base64.StdEncoding.EncodeToString(data)),
	})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var raw string
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == carts.CookieName {
			raw = cookie.Value
		}
	}
	require.NotEmpty(t, raw)
	unescaped, err := url.QueryUnescape(raw)
	require.NoError(t, err)
	decoded, err := base64.StdEncoding.DecodeString(unescaped)
	require.NoError(t, err)
	snapshot := carts.Snapshot{}
	require.NoError(t, json.Unmarshal(decoded, &snapshot))
	require.NotContains(t, snapshot, int32(10))
	require.Contains(t, snapshot, int32(20))
	require.NoError(t, mock.ExpectationsWereMet())
}
