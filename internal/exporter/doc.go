// Package exporter writes analysis results to CSV files and Excel
// workbooks. The Excel report also serves as the histogram renderer the
// analyzer expects, so the age distribution chart ends up in the same
// workbook as the scores and group means.
package exporter
