package rws

import (
	"net/http"
	"net/url"
	"path"
	"strings"
)

// Передача файлов и программ: содержимое файла — непрозрачный байтовый блоб,
// загружаемый в файловое хранилище контроллера.

// UploadTextFile сохраняет файл в указанный каталог файлового хранилища
// контроллера. Передача идет как octet-stream с JSON-ответом.
func (a *RWSAdapter) UploadTextFile(data []byte, directory, filename string) error {
	const op = "upload file"

	status, err := a.put("/fileservice/"+directory+"/"+url.PathEscape(filename), data, map[string]string{
		"Accept":       "application/json",
		"Content-Type": "application/octet-stream;v=2.0",
	})
	if err != nil {
		return err
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return &Error{Kind: KindPrecondition, Op: op, Status: status, Detail: filename}
	}
	a.logger.Infof("uploaded %s to controller directory %s", filename, directory)
	return nil
}

// LoadProgram загружает в задачу RAPID-программу, ранее сохраненную в
// хранилище контроллера по пути progPath. loadMode — add либо replace.
func (a *RWSAdapter) LoadProgram(progPath, loadMode string) error {
	if loadMode == "" {
		loadMode = "replace"
	}
	status, _, err := a.postForm("/rw/rapid/tasks/"+a.task+"/program/load?mastership=implicit", url.Values{
		"progpath": {progPath},
		"loadmode": {loadMode},
	})
	if err != nil {
		return err
	}
	return a.expectNoContent("load program", status, progPath)
}

// SaveProgram сохраняет загруженную программу в хранилище контроллера.
// Пустой destPath заменяется каталогом по умолчанию под именем программы.
func (a *RWSAdapter) SaveProgram(programName, destPath string) error {
	if destPath == "" {
		base := strings.TrimSuffix(programName, path.Ext(programName))
		destPath = path.Join("data/rapid_programs", base)
	}
	status, _, err := a.postForm(
		"/rw/rapid/tasks/"+a.task+"/program/save?name="+url.QueryEscape(programName),
		url.Values{"path": {destPath}})
	if err != nil {
		return err
	}
	return a.expectNoContent("save program", status, destPath)
}
