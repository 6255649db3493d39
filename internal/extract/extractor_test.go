package extract

import (
	"encoding/json"
	"strings"
	"testing"
)

const endpointPage = `<!DOCTYPE html>
<html><body>
<h1>Получение пользователя</h1>
<nav class="breadcrumbs">Главная / API / Пользователи</nav>
<table>
<tr><th>Метод</th><td><code>get.user</code></td></tr>
<tr><th>Кому доступен</th><td>Всем пользователям</td></tr>
<tr><th>Описание</th><td>Возвращает данные пользователя. Подробнее в методе get.users.</td></tr>
</table>
<h3>Параметры запроса</h3>
<table>
<tr><th>Название</th><th>Тип</th><th>Обязательный</th><th>Допустимые значения</th><th>Описание</th></tr>
<tr><td><code>user_id</code></td><td>number</td><td>Да</td><td></td><td>ID пользователя</td></tr>
<tr><td><code>fields</code></td><td>array</td><td>Нет</td><td><ul><li>name</li><li>email</li></ul></td><td>Запрашиваемые поля</td></tr>
</table>
<h3>Параметры ответа</h3>
<table>
<tr><th>Название</th><th>Тип</th><th>Описание</th></tr>
<tr><td><code>id</code></td><td>number</td><td>Идентификатор</td></tr>
<tr><td><code>email</code></td><td>string</td><td>Адрес почты</td></tr>
</table>
<h3>Список возвращаемых ошибок</h3>
<table>
<tr><th></th><th>Код</th><th>Мнемоника</th><th>Описание</th></tr>
<tr><td>1</td><td>404</td><td>user_not_found</td><td>Пользователь не найден</td></tr>
<tr><td>2</td><td>XYZ</td><td>oops</td><td>Нечисловой код</td></tr>
</table>
<h3>Пример запроса</h3>
<pre><code>{"jsonrpc": "2.0", "id": 1, "method": "get.user", "params": {"user_id": 42}}</code></pre>
<h3>Пример ответа</h3>
<pre><code>{"jsonrpc": "2.0", "id": 1, "result": {"data": {"id": 42}}}</code></pre>
<blockquote><p>Метод кешируется на <b>60 секунд</b>.</p></blockquote>
</body></html>`

func TestExtract_EndToEnd(t *testing.T) {
	t.Parallel()

	res := Extract(parseTree(t, endpointPage))
	if res.Skipped {
		t.Fatalf("unexpected skip: %s", res.SkipNote)
	}
	pd := res.Doc
	if pd == nil {
		t.Fatal("nil document")
	}

	m := pd.Method
	if m.Name != "get.user" || m.HTTPMethod != "get" {
		t.Errorf("method: %+v", m)
	}
	if m.Title != "Получение пользователя" || m.AccessLevel != "Всем пользователям" {
		t.Errorf("method metadata: %+v", m)
	}
	if m.Description != "Возвращает данные пользователя." {
		t.Errorf("description cleanup: %q", m.Description)
	}

	if pd.Request.Len() != 2 {
		t.Fatalf("request params: got %d", pd.Request.Len())
	}
	uid, ok := pd.Request.Get("user_id")
	if !ok || uid.Type != "number" || !uid.Required {
		t.Errorf("user_id: %+v", uid)
	}
	fields, _ := pd.Request.Get("fields")
	if fields.Required {
		t.Errorf("fields must be optional: %+v", fields)
	}
	if fields.Constraints == nil || len(fields.Constraints.Enum) != 2 {
		t.Errorf("fields enum: %+v", fields.Constraints)
	}

	if pd.Response.Len() != 2 {
		t.Fatalf("response params: got %d", pd.Response.Len())
	}
	if names := pd.Response.All(); names[0].Name != "id" || names[1].Name != "email" {
		t.Errorf("response order: %+v", names)
	}

	if len(pd.Errors) != 2 {
		t.Fatalf("errors: got %d", len(pd.Errors))
	}
	e := pd.Errors[0]
	if e.Code != "404" || e.Mnemonic != "user_not_found" || e.Description != "Пользователь не найден" {
		t.Errorf("error entry: %+v", e)
	}
	if _, ok := pd.Errors[1].StatusCode(); ok {
		t.Errorf("non-numeric code must not resolve: %+v", pd.Errors[1])
	}

	if pd.RequestExample == nil || pd.RequestExample["method"] != "get.user" {
		t.Errorf("request example: %v", pd.RequestExample)
	}
	if pd.ResponseExample == nil {
		t.Error("response example not parsed")
	}
	if !strings.Contains(pd.NotesHTML, "60 секунд") {
		t.Errorf("notes: %q", pd.NotesHTML)
	}
}

func TestExtract_SkipsNonEndpointPage(t *testing.T) {
	t.Parallel()

	res := Extract(parseTree(t, `<h1>Обзор API</h1><p>Общее описание.</p>`))
	if !res.Skipped {
		t.Fatal("page without a request-parameters section must be skipped")
	}
	if res.Doc != nil {
		t.Error("skipped pages carry no document")
	}
	if res.SkipNote == "" {
		t.Error("skip reason must be recorded")
	}
}

func TestExtract_Idempotent(t *testing.T) {
	t.Parallel()

	first := Extract(parseTree(t, endpointPage))
	second := Extract(parseTree(t, endpointPage))

	a, err := json.Marshal(first.Doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	b, err := json.Marshal(second.Doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(a) != string(b) {
		t.Error("repeated extraction of the same page must produce identical output")
	}
}

func TestExtract_DuplicateParameterWarns(t *testing.T) {
	t.Parallel()

	res := Extract(parseTree(t, `<h3>Параметры запроса</h3>
<table>
<tr><th></th><th></th><th></th><th></th></tr>
<tr><td>dup</td><td>string</td><td>Да</td><td>первое</td></tr>
<tr><td>dup</td><td>string</td><td>Нет</td><td>второе</td></tr>
</table>`))

	if res.Skipped {
		t.Fatal("unexpected skip")
	}
	if res.Doc.Request.Len() != 1 {
		t.Errorf("duplicate must be dropped: %d params", res.Doc.Request.Len())
	}
	if len(res.Warnings) == 0 {
		t.Error("duplicate must be warned about")
	}
	p, _ := res.Doc.Request.Get("dup")
	if !p.Required || p.Description != "первое" {
		t.Errorf("first occurrence must win: %+v", p)
	}
}

func TestExtract_MissingMethodNameStillExtracts(t *testing.T) {
	t.Parallel()

	res := Extract(parseTree(t, `<h1>Страница</h1>
<h3>Параметры запроса</h3>
<table>
<tr><th></th><th></th><th></th><th></th></tr>
<tr><td>a</td><td>string</td><td>Да</td><td>описание</td></tr>
</table>`))

	if res.Skipped {
		t.Fatal("unexpected skip")
	}
	if res.Doc.Method.Name != "" || res.Doc.Method.HTTPMethod != "" {
		t.Errorf("method: %+v", res.Doc.Method)
	}
	if res.Doc.Request.Len() != 1 {
		t.Errorf("params must still be extracted: %d", res.Doc.Request.Len())
	}
}
