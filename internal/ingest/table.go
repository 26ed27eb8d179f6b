package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// ErrUnsupportedFormat 文件扩展名不是 .csv / .xls / .xlsx
var ErrUnsupportedFormat = errors.New("不支持的文件类型，请使用 CSV 或 XLSX")

// ReadTable 按文件扩展名解析原始字节，返回含表头的全部行
func ReadTable(content []byte, filename string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return readCSV(content)
	case ".xls", ".xlsx":
		return readExcel(content)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
}

// Source 返回文件来源标签，用于报告元信息
func Source(filename string) string {
	if strings.ToLower(filepath.Ext(filename)) == ".csv" {
		return "CSV"
	}
	return "XLSX"
}

// readCSV 解析 CSV
// 市场平台导出常用分号分隔和 Windows-1251 编码，这里先按表头探测分隔符，
// 非 UTF-8 内容按 cp1251 解码后再解析
func readCSV(content []byte) ([][]string, error) {
	if !utf8.Valid(content) {
		decoded, err := charmap.Windows1251.NewDecoder().Bytes(content)
		if err != nil {
			return nil, fmt.Errorf("解码 CSV 失败: %w", err)
		}
		content = decoded
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = sniffDelimiter(content)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("解析 CSV 失败: %w", err)
	}
	return rows, nil
}

// sniffDelimiter 从表头行探测分隔符，候选为分号、逗号、制表符
func sniffDelimiter(content []byte) rune {
	header := content
	if i := bytes.IndexByte(content, '\n'); i >= 0 {
		header = content[:i]
	}

	best := ','
	bestCount := bytes.Count(header, []byte(","))
	if n := bytes.Count(header, []byte(";")); n > bestCount {
		best, bestCount = ';', n
	}
	if n := bytes.Count(header, []byte("\t")); n > bestCount {
		best = '\t'
	}
	return best
}

// readExcel 解析 XLS/XLSX 的第一个工作表
func readExcel(content []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("打开 Excel 失败: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel 文件没有工作表")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("读取工作表失败: %w", err)
	}
	return rows, nil
}
