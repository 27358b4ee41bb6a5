// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package web serves a small browser front end over the pipeline:
// upload an article, get a row in the workbook.
package web

import (
	"html/template"
	"io"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/meshintel/cre-ledger/internal/ledger"
	"github.com/meshintel/cre-ledger/internal/pipeline"
	"github.com/meshintel/cre-ledger/pkg/types"
)

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<title>CRE Transaction Ledger</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; margin-top: 1em; }
th, td { border: 1px solid #ccc; padding: 4px 8px; text-align: left; }
th { background: #f0f0f0; }
</style>
</head>
<body>
<h1>CRE Transaction Ledger</h1>
<form action="/extract" method="post" enctype="multipart/form-data">
<input type="file" name="article" accept=".txt">
<button type="submit">Extract &amp; Update Database</button>
</form>
<table>
<tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}
</table>
<p>{{len .Rows}} transactions in {{.Book}}</p>
</body>
</html>
`

// Server wires the extraction pipeline and the workbook into HTTP
// handlers.
type Server struct {
	runner   *pipeline.Runner
	bookPath string
}

// NewServer returns a server that runs runner against the workbook at
// bookPath.
func NewServer(runner *pipeline.Runner, bookPath string) *Server {
	return &Server{runner: runner, bookPath: bookPath}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(template.Must(template.New("index").Parse(indexHTML)))

	r.GET("/", s.index)
	r.POST("/extract", s.extract)
	r.GET("/api/transactions", s.transactions)
	r.GET("/healthz", s.healthz)
	return r
}

func (s *Server) index(c *gin.Context) {
	tbl := s.readBook(c)
	if tbl == nil {
		return
	}
	c.HTML(http.StatusOK, "index", gin.H{
		"Columns": tbl.Columns,
		"Rows":    tbl.Rows,
		"Book":    s.bookPath,
	})
}

func (s *Server) extract(c *gin.Context) {
	upload, err := c.FormFile("article")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing article upload"})
		return
	}
	f, err := upload.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()
	article, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !s.runner.Run(c.Request.Context(), string(article), s.bookPath) {
		// The cause is in the server log; clients get the outcome only.
		c.JSON(http.StatusBadGateway, gin.H{"error": "extraction run failed"})
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) transactions(c *gin.Context) {
	tbl := s.readBook(c)
	if tbl == nil {
		return
	}
	rows := tbl.Rows
	if rows == nil {
		rows = [][]string{}
	}
	c.JSON(http.StatusOK, gin.H{"columns": tbl.Columns, "rows": rows})
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// readBook loads the workbook for display. A workbook that does not
// exist yet reads as empty; other failures abort the request.
func (s *Server) readBook(c *gin.Context) *ledger.Table {
	if _, err := os.Stat(s.bookPath); os.IsNotExist(err) {
		return &ledger.Table{Columns: types.Columns()}
	}
	tbl, err := ledger.Read(s.bookPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil
	}
	return tbl
}
