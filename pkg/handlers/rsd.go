package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"xmlrpc-cms/pkg/config"
)

const rsdTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<rsd version="1.0" xmlns="http://archipelago.phrasewise.com/rsd">
<service>
<engineName>xmlrpc-cms</engineName>
<engineLink>%[1]s</engineLink>
<homePageLink>%[1]s</homePageLink>
<apis>
<api name="MetaWeblog" blogID="blog" preferred="true" apiLink="%[2]s" />
<api name="MovableType" blogID="blog" preferred="false" apiLink="%[2]s" />
<api name="Blogger" blogID="blog" preferred="false" apiLink="%[2]s" />
</apis>
</service>
</rsd>
`

// RSD serves the Really Simple Discovery document desktop clients fetch to
// locate the XML-RPC endpoint.
func RSD(c *gin.Context) {
	doc := fmt.Sprintf(rsdTemplate, config.SiteURL, config.EndpointURL())
	c.Data(http.StatusOK, "application/rsd+xml; charset=utf-8", []byte(doc))
}
